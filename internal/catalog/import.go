package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mono-log/monolog/internal/models"
)

// ImportFile loads products from a JSON array or an Excel workbook, chosen by
// file extension, and upserts them into the store. It returns the number of
// products imported.
func ImportFile(ctx context.Context, store Store, path string) (int, error) {
	var products []*models.Product
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		products, err = loadJSON(path)
	case ".xlsx", ".xlsm":
		products, err = loadExcel(path)
	default:
		return 0, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
	if err != nil {
		return 0, err
	}

	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
	}
	if err := store.BatchUpsertProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to store products: %w", err)
	}
	return len(products), nil
}

func loadJSON(path string) ([]*models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return products, nil
}

// excelColumns maps header cell names to product fields. Header matching is
// case-insensitive; unknown columns are ignored.
var excelColumns = map[string]func(*models.Product, string){
	"id":          func(p *models.Product, v string) { p.ID = v },
	"name":        func(p *models.Product, v string) { p.Name = v },
	"maker":       func(p *models.Product, v string) { p.Maker = v },
	"price":       func(p *models.Product, v string) { p.Price = v },
	"category":    func(p *models.Product, v string) { p.Category = v },
	"image_path":  func(p *models.Product, v string) { p.ImagePath = v },
	"product_url": func(p *models.Product, v string) { p.ProductURL = v },
	"image_hash":  func(p *models.Product, v string) { p.ImageHash = v },
	"ocr_lines":   func(p *models.Product, v string) { p.OCRLines = v },
}

func loadExcel(path string) ([]*models.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var products []*models.Product
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		setters := make([]func(*models.Product, string), len(rows[0]))
		for i, header := range rows[0] {
			setters[i] = excelColumns[strings.ToLower(strings.TrimSpace(header))]
		}

		for _, row := range rows[1:] {
			var p models.Product
			for i, cell := range row {
				if i < len(setters) && setters[i] != nil {
					setters[i](&p, strings.TrimSpace(cell))
				}
			}
			if p.Name == "" {
				continue
			}
			products = append(products, &p)
		}
	}
	return products, nil
}
