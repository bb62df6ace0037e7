package encoder

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// inputSize is the square input resolution of the CLIP visual encoder.
const inputSize = 224

// CLIP normalization constants, per channel (RGB).
var (
	clipMean = [3]float32{0.48145466, 0.4578275, 0.40821073}
	clipStd  = [3]float32{0.26862954, 0.26130258, 0.27577711}
)

// Preprocess decodes an uploaded image and converts it to the CHW float32
// layout the CLIP visual encoder expects: resized to 224x224 with bilinear
// sampling, scaled to [0,1] and normalized per channel.
func Preprocess(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return pixelValues(img), nil
}

func pixelValues(img image.Image) []float32 {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	out := make([]float32, 3*inputSize*inputSize)
	plane := inputSize * inputSize

	for y := 0; y < inputSize; y++ {
		// Map output pixel centers back into source coordinates.
		sy := (float64(y) + 0.5) * float64(srcH) / inputSize
		for x := 0; x < inputSize; x++ {
			sx := (float64(x) + 0.5) * float64(srcW) / inputSize
			r, g, b := bilinearAt(img, sx-0.5, sy-0.5)

			i := y*inputSize + x
			out[i] = (r - clipMean[0]) / clipStd[0]
			out[plane+i] = (g - clipMean[1]) / clipStd[1]
			out[2*plane+i] = (b - clipMean[2]) / clipStd[2]
		}
	}
	return out
}

// bilinearAt samples img at fractional coordinates, returning RGB in [0,1].
func bilinearAt(img image.Image, x, y float64) (float32, float32, float32) {
	bounds := img.Bounds()
	x0 := clampInt(int(x), 0, bounds.Dx()-1)
	y0 := clampInt(int(y), 0, bounds.Dy()-1)
	x1 := clampInt(x0+1, 0, bounds.Dx()-1)
	y1 := clampInt(y0+1, 0, bounds.Dy()-1)
	fx := x - float64(int(x))
	fy := y - float64(int(y))
	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}

	r00, g00, b00 := rgbAt(img, x0, y0)
	r10, g10, b10 := rgbAt(img, x1, y0)
	r01, g01, b01 := rgbAt(img, x0, y1)
	r11, g11, b11 := rgbAt(img, x1, y1)

	lerp2 := func(v00, v10, v01, v11 float64) float32 {
		top := v00*(1-fx) + v10*fx
		bottom := v01*(1-fx) + v11*fx
		return float32(top*(1-fy) + bottom*fy)
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11), lerp2(b00, b10, b01, b11)
}

func rgbAt(img image.Image, x, y int) (float64, float64, float64) {
	bounds := img.Bounds()
	r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	return float64(r) / 65535, float64(g) / 65535, float64(b) / 65535
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
