// Package encoder produces image embeddings via an ONNX CLIP visual encoder.
package encoder

import "context"

// ImageEncoder produces vector embeddings for images.
type ImageEncoder interface {
	Encode(ctx context.Context, image []byte) ([]float32, error)
	Dimensions() int
	Close() error
}
