// Package vector provides the image-embedding index and nearest-neighbor
// search over it.
package vector

import "context"

// Index defines embedding storage and nearest-neighbor search.
type Index interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]*Hit, error)
	Remove(ctx context.Context, ids []string) error
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}

// Hit is a single nearest-neighbor result. ID is the product ID the
// embedding was indexed under. Distance is 1 - cosine similarity for
// normalized embeddings, so lower is closer.
type Hit struct {
	ID       string
	Distance float64
}
