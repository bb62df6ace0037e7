// Package vector provides similarity helpers for normalized embeddings.
package vector

import "math"

// InnerProduct returns the inner product of two vectors. For normalized
// embeddings this equals cosine similarity.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

// CosineSimilarity returns the similarity of two normalized embeddings,
// clamped to [0,1].
func CosineSimilarity(a, b []float32) float64 {
	return math.Max(0, math.Min(1, InnerProduct(a, b)))
}

// SimilarityFromDistance converts an index distance (1 - cosine) back to a
// similarity in [0,1].
func SimilarityFromDistance(distance float64) float64 {
	return math.Max(0, math.Min(1, 1-distance))
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

// Normalize scales x to unit length in place. The zero vector is left
// unchanged.
func Normalize(x []float32) {
	norm := L2Norm(x)
	if norm == 0 {
		return
	}
	for i := range x {
		x[i] = float32(float64(x[i]) / norm)
	}
}
