package encoder

import (
	"context"
	"hash/fnv"
	"math"
)

// MockEncoder is a deterministic encoder for tests. It returns a
// fixed-dimension vector derived from the image content hash so the same
// bytes always get the same embedding.
type MockEncoder struct {
	dimensions int
}

// NewMockEncoder returns an encoder that produces deterministic embeddings
// of the given dimensions.
func NewMockEncoder(dimensions int) *MockEncoder {
	if dimensions <= 0 {
		dimensions = 512
	}
	return &MockEncoder{dimensions: dimensions}
}

// Encode returns a deterministic embedding based on the image hash.
func (e *MockEncoder) Encode(ctx context.Context, image []byte) ([]float32, error) {
	h := fnv.New64a()
	_, _ = h.Write(image)
	seed := h.Sum64()

	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(seed%100003)*float64(i+1))*0.1 + 0.01)
	}
	// Normalize to unit length for cosine similarity
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range emb {
			emb[i] *= float32(norm)
		}
	}
	return emb, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEncoder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEncoder.
func (e *MockEncoder) Close() error {
	return nil
}
