package encoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func TestMockEncoder_Deterministic(t *testing.T) {
	enc := NewMockEncoder(64)
	ctx := context.Background()

	a1, err := enc.Encode(ctx, []byte("image-a"))
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := enc.Encode(ctx, []byte("image-a"))
	b, _ := enc.Encode(ctx, []byte("image-b"))

	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatal("same bytes must produce the same embedding")
		}
	}
	same := true
	for i := range a1 {
		if a1[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different bytes should produce different embeddings")
	}
}

func TestMockEncoder_Normalized(t *testing.T) {
	enc := NewMockEncoder(64)
	emb, err := enc.Encode(context.Background(), []byte("image"))
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, v := range emb {
		sum += float64(v * v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-4 {
		t.Errorf("embedding norm = %v, want 1", math.Sqrt(sum))
	}
}

func TestMockEncoder_DefaultDimensions(t *testing.T) {
	enc := NewMockEncoder(0)
	if enc.Dimensions() != 512 {
		t.Errorf("Dimensions() = %d, want 512", enc.Dimensions())
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPreprocess(t *testing.T) {
	pixels, err := Preprocess(testPNG(t, 64, 48))
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 3*inputSize*inputSize {
		t.Fatalf("len = %d, want %d", len(pixels), 3*inputSize*inputSize)
	}
	for _, v := range pixels {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatal("pixel values must be finite")
		}
	}
}

func TestPreprocess_InvalidImage(t *testing.T) {
	if _, err := Preprocess([]byte("this is not an image")); err == nil {
		t.Error("expected error for undecodable bytes")
	}
}

func TestEmbeddingCache(t *testing.T) {
	cache := NewEmbeddingCache(2)
	cache.Set("a", []float32{1})
	cache.Set("b", []float32{2})

	if _, ok := cache.Get("a"); !ok {
		t.Error("a should be cached")
	}

	// a was just touched, so adding c evicts b.
	cache.Set("c", []float32{3})
	if _, ok := cache.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("a should still be cached")
	}
}

func TestCacheKey(t *testing.T) {
	if CacheKey([]byte("x")) == CacheKey([]byte("y")) {
		t.Error("different content must hash differently")
	}
	if CacheKey([]byte("x")) != CacheKey([]byte("x")) {
		t.Error("same content must hash identically")
	}
}
