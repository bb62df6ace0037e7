// Package models defines core data structures for catalog products, search
// hints, and search results.
package models

import (
	"encoding/json"
	"time"
)

// Product is a catalog entry as ingested from the crawler. It is read-only
// during a search request; scoring output lives on ScoredResult, never here.
type Product struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Maker      string    `json:"maker" db:"maker"`
	Price      string    `json:"price" db:"price"`
	Category   string    `json:"category,omitempty" db:"category"`
	ImagePath  string    `json:"image_path,omitempty" db:"image_path"`
	ProductURL string    `json:"product_url,omitempty" db:"product_url"`
	ImageHash  string    `json:"image_hash,omitempty" db:"image_hash"`
	// OCRLines is the raw JSON stored by ingestion: a list of {"text": ...}
	// records recognized from the catalog image. Malformed or empty data is
	// tolerated everywhere it is read.
	OCRLines  string    `json:"ocr_lines,omitempty" db:"ocr_lines"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// ocrLine mirrors one record of the ingestion-side OCR output.
type ocrLine struct {
	Text string `json:"text"`
}

// OCRTexts decodes the stored ocr_lines JSON into its text values.
// Malformed or absent data yields nil, never an error.
func (p *Product) OCRTexts() []string {
	if p.OCRLines == "" {
		return nil
	}
	var lines []ocrLine
	if err := json.Unmarshal([]byte(p.OCRLines), &lines); err != nil {
		return nil
	}
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Text != "" {
			texts = append(texts, line.Text)
		}
	}
	return texts
}

// Candidate is one retrieval hit: a product annotated with its vector
// similarity for the current request. Created fresh per request and
// discarded with it.
type Candidate struct {
	Product    *Product
	Similarity float64 // 1 - distance, in [0,1]
}
