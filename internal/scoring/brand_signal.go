package scoring

import (
	"fmt"
	"strings"
)

// BrandSignal awards BrandBonus when the candidate's maker matches either
// the resolved user brand hint or the text recognized in the photo. The
// hint path takes precedence; OCR detection is the fallback when no hint
// was supplied or the hint did not match. The bonus is awarded at most once.
type BrandSignal struct {
	weights *Weights
	resolve BrandResolver
}

// NewBrandSignal creates a brand signal using the given alias resolver.
func NewBrandSignal(weights *Weights, resolve BrandResolver) *BrandSignal {
	if resolve == nil {
		resolve = func(q string) string { return q }
	}
	return &BrandSignal{weights: weights, resolve: resolve}
}

// Name returns the signal name.
func (s *BrandSignal) Name() string {
	return "brand"
}

// Evaluate checks the user hint first, then falls back to the detected text.
func (s *BrandSignal) Evaluate(ctx *SignalContext) SignalResult {
	maker := ctx.Product.Maker

	if ctx.Hints.Brand != "" {
		token := s.resolve(ctx.Hints.Brand)
		// Catalog maker text is not Latin script; the comparison is an
		// exact, case-sensitive substring check.
		if token != "" && strings.Contains(maker, token) {
			return SignalResult{
				Bonus:   s.weights.BrandBonus,
				Reasons: []string{fmt.Sprintf("brand hint %q resolved to %q, found in maker %q", ctx.Hints.Brand, token, maker)},
			}
		}
	}

	if maker == "" || len(ctx.Detected) == 0 {
		return SignalResult{}
	}

	if strings.Contains(ctx.Detected.Joined(), maker) {
		return SignalResult{
			Bonus:   s.weights.BrandBonus,
			Reasons: []string{fmt.Sprintf("maker %q found in detected text", maker)},
		}
	}

	for _, token := range ctx.Detected {
		if !FuzzyEligible(token) {
			continue
		}
		if ratio := Similarity(token, maker); ratio >= s.weights.SimilarityThreshold {
			return SignalResult{
				Bonus:   s.weights.BrandBonus,
				Reasons: []string{fmt.Sprintf("detected token %q fuzzy-matches maker %q (%.2f)", token, maker, ratio)},
			}
		}
	}

	return SignalResult{}
}
