// Package catalog defines the persistence interface for the product catalog.
package catalog

import (
	"context"

	"github.com/mono-log/monolog/internal/models"
)

// Store defines product persistence operations.
type Store interface {
	// Product operations
	UpsertProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error)

	// Batch operations
	GetProducts(ctx context.Context, ids []string) ([]*models.Product, error)
	BatchUpsertProducts(ctx context.Context, products []*models.Product) error

	// Stats
	CountProducts(ctx context.Context) (int64, error)

	Close() error
}
