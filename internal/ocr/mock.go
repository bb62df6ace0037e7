package ocr

import (
	"context"

	"github.com/mono-log/monolog/internal/models"
)

// MockRecognizer returns fixed text lines, for tests and for running the
// server without an OCR service. The zero value recognizes nothing.
type MockRecognizer struct {
	Texts models.DetectedText
	Err   error
}

// Recognize returns the configured lines or error.
func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) (models.DetectedText, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Texts, nil
}

// Close is a no-op for MockRecognizer.
func (m *MockRecognizer) Close() error {
	return nil
}
