package scoring

import (
	"fmt"
)

// NameSignal awards NameBonus when the candidate's name matches the user's
// name or keyword hint, or, failing that, the text recognized in the photo.
// The bonus is awarded at most once regardless of how many paths match.
type NameSignal struct {
	weights *Weights
}

// NewNameSignal creates a name signal.
func NewNameSignal(weights *Weights) *NameSignal {
	return &NameSignal{weights: weights}
}

// Name returns the signal name.
func (s *NameSignal) Name() string {
	return "name"
}

// Evaluate prefers the explicit hints, then falls back to detected text:
// candidate name contained in the joined text, a detected token (>= 2 runes)
// contained in the candidate name, or a fuzzy token match. First success wins.
func (s *NameSignal) Evaluate(ctx *SignalContext) SignalResult {
	name := ctx.Product.Name

	for _, hint := range []string{ctx.Hints.Name, ctx.Hints.Keyword} {
		if hint == "" {
			continue
		}
		if containsFold(name, hint) {
			return SignalResult{
				Bonus:   s.weights.NameBonus,
				Reasons: []string{fmt.Sprintf("hint %q found in product name", hint)},
			}
		}
	}

	if name == "" || len(ctx.Detected) == 0 {
		return SignalResult{}
	}

	if containsFold(ctx.Detected.Joined(), name) {
		return SignalResult{
			Bonus:   s.weights.NameBonus,
			Reasons: []string{"product name found in detected text"},
		}
	}

	for _, token := range ctx.Detected {
		if len([]rune(token)) < 2 {
			continue
		}
		if containsFold(name, token) {
			return SignalResult{
				Bonus:   s.weights.NameBonus,
				Reasons: []string{fmt.Sprintf("detected token %q found in product name", token)},
			}
		}
	}

	for _, token := range ctx.Detected {
		if !FuzzyEligible(token) {
			continue
		}
		if ratio := Similarity(token, name); ratio >= s.weights.SimilarityThreshold {
			return SignalResult{
				Bonus:   s.weights.NameBonus,
				Reasons: []string{fmt.Sprintf("detected token %q fuzzy-matches product name (%.2f)", token, ratio)},
			}
		}
	}

	return SignalResult{}
}
