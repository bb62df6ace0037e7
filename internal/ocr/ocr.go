// Package ocr extracts text from query images for scoring signals.
package ocr

import (
	"context"

	"github.com/mono-log/monolog/internal/models"
)

// Recognizer extracts text lines from an image. Implementations must be safe
// for concurrent use; the search engine runs recognition alongside encoding.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (models.DetectedText, error)
	Close() error
}
