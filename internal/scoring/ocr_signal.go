package scoring

import (
	"fmt"
	"strings"
)

// OCRSignal compares the token set recognized in the submitted photo with
// the token set of the catalog entry (name, maker, and the recognized text
// lines stored at ingestion). The overlap ratio maps to a tiered bonus; the
// ratio is recorded in the breakdown even below the minimum tier.
type OCRSignal struct {
	weights *Weights
}

// NewOCRSignal creates an OCR-overlap signal.
func NewOCRSignal(weights *Weights) *OCRSignal {
	return &OCRSignal{weights: weights}
}

// Name returns the signal name.
func (s *OCRSignal) Name() string {
	return "ocr_overlap"
}

// Evaluate counts exact token intersections plus a greedy one-to-one fuzzy
// pairing of the leftovers (length >= 3, similarity >= threshold; each
// catalog token consumed at most once), then applies the tiered bonus.
func (s *OCRSignal) Evaluate(ctx *SignalContext) SignalResult {
	detected := tokenSet(ctx.Detected)

	catalogParts := []string{ctx.Product.Name, ctx.Product.Maker}
	catalogParts = append(catalogParts, ctx.Product.OCRTexts()...)
	catalog := tokenSet(catalogParts)

	if len(detected) == 0 || len(catalog) == 0 {
		return SignalResult{}
	}

	overlap := 0
	consumed := make([]bool, len(catalog))

	// Exact set intersection first.
	remaining := detected[:0:0]
	for _, tok := range detected {
		matched := false
		for i, cat := range catalog {
			if !consumed[i] && tok == cat {
				consumed[i] = true
				matched = true
				overlap++
				break
			}
		}
		if !matched {
			remaining = append(remaining, tok)
		}
	}

	// Greedy fuzzy pairing over the leftovers.
	for _, tok := range remaining {
		if !FuzzyEligible(tok) {
			continue
		}
		for i, cat := range catalog {
			if consumed[i] || !FuzzyEligible(cat) {
				continue
			}
			if Similarity(tok, cat) >= s.weights.SimilarityThreshold {
				consumed[i] = true
				overlap++
				break
			}
		}
	}

	denom := len(detected)
	if len(catalog) > denom {
		denom = len(catalog)
	}
	ratio := float64(overlap) / float64(denom) * 100

	result := SignalResult{MatchRatio: ratio}
	switch {
	case ratio >= s.weights.OCRThresholdGood:
		result.Bonus = s.weights.OCRBonusGood
		result.Reasons = []string{fmt.Sprintf("ocr overlap %.1f%% (good)", ratio)}
	case ratio >= s.weights.OCRThresholdFair:
		result.Bonus = s.weights.OCRBonusFair
		result.Reasons = []string{fmt.Sprintf("ocr overlap %.1f%% (fair)", ratio)}
	case ratio >= s.weights.OCRThresholdMinimum:
		result.Bonus = s.weights.OCRBonusPoor
		result.Reasons = []string{fmt.Sprintf("ocr overlap %.1f%% (poor)", ratio)}
	default:
		if ratio > 0 && s.weights.ReportBelowMinimum() {
			result.Reasons = []string{fmt.Sprintf("ocr overlap %.1f%% (below minimum)", ratio)}
		}
	}
	return result
}

// tokenSet splits the inputs on whitespace, lowercases them, and returns
// the unique tokens in first-seen order so evaluation stays deterministic.
func tokenSet(parts []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, part := range parts {
		for _, tok := range strings.Fields(strings.ToLower(part)) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
