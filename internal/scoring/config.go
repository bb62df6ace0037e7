package scoring

// Weights holds all configuration for the hybrid scoring engine. It is
// loaded once at startup and read-only afterwards.
type Weights struct {
	// BaseScoreWeight is the fraction of the final score coming from raw
	// vector similarity. The remainder (1 - BaseScoreWeight) weights the
	// signal bonuses.
	BaseScoreWeight float64 `yaml:"base_score_weight"` // default: 0.3

	// Flat bonuses
	BrandBonus float64 `yaml:"brand_bonus"` // default: 0.15
	NameBonus  float64 `yaml:"name_bonus"`  // default: 0.15

	// Price tiers: percentage distance from the hinted price.
	PriceBonusNear     float64 `yaml:"price_bonus_near"`     // default: 0.10
	PriceBonusFar      float64 `yaml:"price_bonus_far"`      // default: 0.05
	PriceThresholdNear float64 `yaml:"price_threshold_near"` // default: 10 (%)
	PriceThresholdFar  float64 `yaml:"price_threshold_far"`  // default: 30 (%)

	// OCR-overlap tiers: token match ratio in percent, inclusive on the
	// lower side of each tier.
	OCRBonusPoor        float64 `yaml:"ocr_bonus_poor"`        // default: 0.02
	OCRBonusFair        float64 `yaml:"ocr_bonus_fair"`        // default: 0.03
	OCRBonusGood        float64 `yaml:"ocr_bonus_good"`        // default: 0.05
	OCRThresholdMinimum float64 `yaml:"ocr_threshold_minimum"` // default: 20 (%)
	OCRThresholdFair    float64 `yaml:"ocr_threshold_fair"`    // default: 40 (%)
	OCRThresholdGood    float64 `yaml:"ocr_threshold_good"`    // default: 60 (%)

	// SimilarityThreshold is the fuzzy-match acceptance cutoff.
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // default: 0.8

	// OCRReportBelowMinimum controls whether a match ratio below the minimum
	// tier is still emitted as a reason string. The ratio itself is always
	// recorded in the breakdown.
	OCRReportBelowMinimum *bool `yaml:"ocr_report_below_minimum"` // default: true
}

// DefaultWeights returns the default scoring configuration.
func DefaultWeights() *Weights {
	return &Weights{
		BaseScoreWeight: 0.3,

		BrandBonus: 0.15,
		NameBonus:  0.15,

		PriceBonusNear:     0.10,
		PriceBonusFar:      0.05,
		PriceThresholdNear: 10,
		PriceThresholdFar:  30,

		OCRBonusPoor:        0.02,
		OCRBonusFair:        0.03,
		OCRBonusGood:        0.05,
		OCRThresholdMinimum: 20,
		OCRThresholdFair:    40,
		OCRThresholdGood:    60,

		SimilarityThreshold: 0.8,
	}
}

// ApplyDefaults fills in unset or invalid values with defaults. Zero and
// negative weights, and a base score weight outside [0,1], are treated as
// unset (configuration errors are resolved to defaults, never fatal).
func (w *Weights) ApplyDefaults() {
	defaults := DefaultWeights()

	if w.BaseScoreWeight <= 0 || w.BaseScoreWeight > 1 {
		w.BaseScoreWeight = defaults.BaseScoreWeight
	}
	if w.BrandBonus <= 0 {
		w.BrandBonus = defaults.BrandBonus
	}
	if w.NameBonus <= 0 {
		w.NameBonus = defaults.NameBonus
	}
	if w.PriceBonusNear <= 0 {
		w.PriceBonusNear = defaults.PriceBonusNear
	}
	if w.PriceBonusFar <= 0 {
		w.PriceBonusFar = defaults.PriceBonusFar
	}
	if w.PriceThresholdNear <= 0 {
		w.PriceThresholdNear = defaults.PriceThresholdNear
	}
	if w.PriceThresholdFar <= 0 {
		w.PriceThresholdFar = defaults.PriceThresholdFar
	}
	if w.OCRBonusPoor <= 0 {
		w.OCRBonusPoor = defaults.OCRBonusPoor
	}
	if w.OCRBonusFair <= 0 {
		w.OCRBonusFair = defaults.OCRBonusFair
	}
	if w.OCRBonusGood <= 0 {
		w.OCRBonusGood = defaults.OCRBonusGood
	}
	if w.OCRThresholdMinimum <= 0 {
		w.OCRThresholdMinimum = defaults.OCRThresholdMinimum
	}
	if w.OCRThresholdFair <= 0 {
		w.OCRThresholdFair = defaults.OCRThresholdFair
	}
	if w.OCRThresholdGood <= 0 {
		w.OCRThresholdGood = defaults.OCRThresholdGood
	}
	if w.SimilarityThreshold <= 0 || w.SimilarityThreshold > 1 {
		w.SimilarityThreshold = defaults.SimilarityThreshold
	}
}

// ReportBelowMinimum reports whether sub-minimum OCR ratios produce a reason
// string; defaults to true when unset.
func (w *Weights) ReportBelowMinimum() bool {
	if w.OCRReportBelowMinimum != nil {
		return *w.OCRReportBelowMinimum
	}
	return true
}

// MaxBonus is the sum of the single largest attainable bonus from each
// signal category. It is derived from the effective weights on every call
// so it can never go stale.
func (w *Weights) MaxBonus() float64 {
	return w.BrandBonus + w.NameBonus +
		maxFloat(w.PriceBonusNear, w.PriceBonusFar) +
		maxFloat(w.OCRBonusPoor, maxFloat(w.OCRBonusFair, w.OCRBonusGood))
}

// MaxPossible is the highest raw score the weighted formula can produce:
// a perfect base similarity plus every signal at its largest bonus.
func (w *Weights) MaxPossible() float64 {
	bonusWeight := 1 - w.BaseScoreWeight
	return 1*w.BaseScoreWeight + w.MaxBonus()*bonusWeight
}

func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}
