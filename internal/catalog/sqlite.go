// Package catalog provides SQLite implementation of the Store interface.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mono-log/monolog/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		maker TEXT,
		price TEXT,
		category TEXT,
		image_path TEXT,
		product_url TEXT,
		image_hash TEXT,
		ocr_lines TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_maker ON products(maker);
	CREATE INDEX IF NOT EXISTS idx_products_image_hash ON products(image_hash);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertProduct inserts a product or replaces an existing row with the same
// ID. The original created_at survives an update.
func (s *SQLiteStore) UpsertProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, maker, price, category, image_path, product_url, image_hash, ocr_lines, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			maker = excluded.maker,
			price = excluded.price,
			category = excluded.category,
			image_path = excluded.image_path,
			product_url = excluded.product_url,
			image_hash = excluded.image_hash,
			ocr_lines = excluded.ocr_lines,
			updated_at = excluded.updated_at`,
		product.ID, product.Name, product.Maker, product.Price, product.Category,
		product.ImagePath, product.ProductURL, product.ImageHash, product.OCRLines,
		product.CreatedAt, product.UpdatedAt,
	)
	return err
}

// GetProduct returns a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT id, name, maker, price, category, image_path, product_url, image_hash, ocr_lines, created_at, updated_at
		 FROM products WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// ListProducts returns products with offset and limit, newest first.
func (s *SQLiteStore) ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, maker, price, category, image_path, product_url, image_hash, ocr_lines, created_at, updated_at
		 FROM products ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// GetProducts returns products for the given IDs in the order the IDs were
// passed. IDs with no matching row are skipped silently so a stale vector
// index entry cannot fail a whole search.
func (s *SQLiteStore) GetProducts(ctx context.Context, ids []string) ([]*models.Product, error) {
	products := make([]*models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := scanProduct(s.db.QueryRowContext(ctx,
			`SELECT id, name, maker, price, category, image_path, product_url, image_hash, ocr_lines, created_at, updated_at
			 FROM products WHERE id = ?`, id,
		))
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// BatchUpsertProducts upserts multiple products in a transaction.
func (s *SQLiteStore) BatchUpsertProducts(ctx context.Context, products []*models.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (id, name, maker, price, category, image_path, product_url, image_hash, ocr_lines, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			maker = excluded.maker,
			price = excluded.price,
			category = excluded.category,
			image_path = excluded.image_path,
			product_url = excluded.product_url,
			image_hash = excluded.image_hash,
			ocr_lines = excluded.ocr_lines,
			updated_at = excluded.updated_at`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, product := range products {
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now
		}
		product.UpdatedAt = now
		if _, err := stmt.ExecContext(ctx,
			product.ID, product.Name, product.Maker, product.Price, product.Category,
			product.ImagePath, product.ProductURL, product.ImageHash, product.OCRLines,
			product.CreatedAt, product.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountProducts returns the total number of products.
func (s *SQLiteStore) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Maker, &p.Price, &p.Category,
		&p.ImagePath, &p.ProductURL, &p.ImageHash, &p.OCRLines,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
