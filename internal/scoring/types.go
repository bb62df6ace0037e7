// Package scoring implements the hybrid re-ranking engine: fuzzy text
// matching, per-signal bonus evaluation, normalized score fusion, and
// deterministic ranking of retrieved candidates.
package scoring

import "github.com/mono-log/monolog/internal/models"

// BrandResolver maps a user-supplied brand hint to the canonical maker
// token stored in the catalog, or returns the query unchanged.
type BrandResolver func(query string) string

// SignalContext provides everything a signal needs to evaluate one
// candidate. It is built fresh per candidate and never mutated.
type SignalContext struct {
	Product  *models.Product
	Hints    models.UserHints
	Detected models.DetectedText
}

// SignalResult is the outcome of one signal evaluation: the awarded bonus
// (zero when the signal did not match) and human-readable reasons.
type SignalResult struct {
	Bonus   float64
	Reasons []string
	// MatchRatio is the token overlap percentage; only the OCR-overlap
	// signal sets it.
	MatchRatio float64
}

// Signal is the interface implemented by all bonus evaluators.
type Signal interface {
	// Evaluate computes the signal's bonus for a candidate. Pure and
	// deterministic for identical inputs.
	Evaluate(ctx *SignalContext) SignalResult
	// Name returns the signal name for logging.
	Name() string
}

// Breakdown records the per-signal bonuses and the OCR match ratio for one
// candidate. Kept for observability only; it never affects ranking beyond
// the numbers it stores.
type Breakdown struct {
	BrandBonus    float64  `json:"brand_bonus"`
	NameBonus     float64  `json:"name_bonus"`
	PriceBonus    float64  `json:"price_bonus"`
	OCRBonus      float64  `json:"ocr_bonus"`
	OCRMatchRatio float64  `json:"ocr_match_ratio"`
	BonusScore    float64  `json:"bonus_score"`
	BaseScore     float64  `json:"base_score"`
	FinalScore    float64  `json:"final_score"`
	Reasons       []string `json:"reasons,omitempty"`
}

// ScoredResult pairs a candidate with its computed final score. Produced by
// the engine, consumed by ranking; request-scoped.
type ScoredResult struct {
	Candidate  *models.Candidate
	FinalScore float64
	Breakdown  *Breakdown
}
