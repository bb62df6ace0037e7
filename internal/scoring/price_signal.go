package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PriceSignal awards a tiered bonus based on the percentage distance between
// the hinted price and the candidate's price. Unparseable prices silently
// contribute zero; lenient parsing is never an error.
type PriceSignal struct {
	weights *Weights
}

// NewPriceSignal creates a price signal.
func NewPriceSignal(weights *Weights) *PriceSignal {
	return &PriceSignal{weights: weights}
}

// Name returns the signal name.
func (s *PriceSignal) Name() string {
	return "price"
}

// Evaluate computes ratio = |target-actual| / target * 100 and applies the
// near/far tiers. Only one tier applies. A zero target means no bonus.
func (s *PriceSignal) Evaluate(ctx *SignalContext) SignalResult {
	target, ok := parsePrice(ctx.Hints.Price)
	if !ok {
		return SignalResult{}
	}
	actual, ok := parsePrice(ctx.Product.Price)
	if !ok {
		return SignalResult{}
	}

	ratio := 100.0
	if target > 0 {
		ratio = math.Abs(float64(target-actual)) / float64(target) * 100
	}

	switch {
	case ratio <= s.weights.PriceThresholdNear:
		return SignalResult{
			Bonus:   s.weights.PriceBonusNear,
			Reasons: []string{fmt.Sprintf("price %d within %.0f%% of hint %d", actual, s.weights.PriceThresholdNear, target)},
		}
	case ratio <= s.weights.PriceThresholdFar:
		return SignalResult{
			Bonus:   s.weights.PriceBonusFar,
			Reasons: []string{fmt.Sprintf("price %d within %.0f%% of hint %d", actual, s.weights.PriceThresholdFar, target)},
		}
	}
	return SignalResult{}
}

// parsePrice parses a non-negative integer price string. Returns false for
// anything else.
func parsePrice(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
