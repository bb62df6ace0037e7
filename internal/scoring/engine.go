package scoring

import "github.com/mono-log/monolog/internal/models"

// Engine fuses the base vector similarity with the signal bonuses into one
// bounded, deterministic final score. It holds no mutable state beyond the
// read-only weights and is safe for concurrent use.
type Engine struct {
	weights *Weights
	brand   *BrandSignal
	name    *NameSignal
	price   *PriceSignal
	ocr     *OCRSignal
}

// NewEngine creates a scoring engine. A nil weights value uses the defaults;
// zero and invalid fields are resolved to defaults either way.
func NewEngine(weights *Weights, resolve BrandResolver) *Engine {
	if weights == nil {
		weights = DefaultWeights()
	}
	weights.ApplyDefaults()

	return &Engine{
		weights: weights,
		brand:   NewBrandSignal(weights, resolve),
		name:    NewNameSignal(weights),
		price:   NewPriceSignal(weights),
		ocr:     NewOCRSignal(weights),
	}
}

// Weights returns the engine's effective configuration.
func (e *Engine) Weights() *Weights {
	return e.weights
}

// Score evaluates every signal for one candidate and applies the normalized
// weighted formula. The result is always in [0,1]: bonuses are non-negative
// and the raw score is divided by the configured maximum, so a satisfied
// signal can only raise the score, never lower it.
func (e *Engine) Score(c *models.Candidate, hints models.UserHints, detected models.DetectedText) *ScoredResult {
	ctx := &SignalContext{Product: c.Product, Hints: hints, Detected: detected}

	brandRes := e.brand.Evaluate(ctx)
	nameRes := e.name.Evaluate(ctx)
	priceRes := e.price.Evaluate(ctx)
	ocrRes := e.ocr.Evaluate(ctx)

	bonusScore := brandRes.Bonus + nameRes.Bonus + priceRes.Bonus + ocrRes.Bonus
	bonusWeight := 1 - e.weights.BaseScoreWeight
	rawFinal := c.Similarity*e.weights.BaseScoreWeight + bonusScore*bonusWeight

	final := 0.0
	if maxPossible := e.weights.MaxPossible(); maxPossible > 0 {
		final = rawFinal / maxPossible
		if final > 1 {
			final = 1
		}
	}

	breakdown := &Breakdown{
		BrandBonus:    brandRes.Bonus,
		NameBonus:     nameRes.Bonus,
		PriceBonus:    priceRes.Bonus,
		OCRBonus:      ocrRes.Bonus,
		OCRMatchRatio: ocrRes.MatchRatio,
		BonusScore:    bonusScore,
		BaseScore:     c.Similarity,
		FinalScore:    final,
	}
	for _, res := range []SignalResult{brandRes, nameRes, priceRes, ocrRes} {
		breakdown.Reasons = append(breakdown.Reasons, res.Reasons...)
	}

	return &ScoredResult{Candidate: c, FinalScore: final, Breakdown: breakdown}
}

// ScoreAll scores every candidate in retrieval order.
func (e *Engine) ScoreAll(candidates []*models.Candidate, hints models.UserHints, detected models.DetectedText) []*ScoredResult {
	results := make([]*ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, e.Score(c, hints, detected))
	}
	return results
}
