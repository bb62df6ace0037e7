package scoring

import (
	"testing"

	"github.com/mono-log/monolog/internal/models"
)

// testResolver mimics the brand alias table for a couple of entries.
func testResolver(q string) string {
	switch q {
	case "nissin", "Nissin", "NISSIN":
		return "日清"
	case "peyoung":
		return "まるか食品"
	case "":
		return ""
	}
	return q
}

func brandCtx(maker, hint string, detected ...string) *SignalContext {
	return &SignalContext{
		Product:  &models.Product{Maker: maker},
		Hints:    models.UserHints{Brand: hint},
		Detected: models.DetectedText(detected),
	}
}

func TestBrandSignal_HintPath(t *testing.T) {
	w := DefaultWeights()
	sig := NewBrandSignal(w, testResolver)

	tests := []struct {
		name string
		ctx  *SignalContext
		want float64
	}{
		{"resolved alias in maker", brandCtx("日清食品", "nissin"), w.BrandBonus},
		{"alias resolution is case-insensitive", brandCtx("日清食品", "NISSIN"), w.BrandBonus},
		{"literal maker text", brandCtx("東洋水産", "東洋水産"), w.BrandBonus},
		{"maker comparison is case-sensitive", brandCtx("ACECOOK", "acecook"), 0},
		{"hint does not match", brandCtx("東洋水産", "nissin"), 0},
		{"no hint no detected text", brandCtx("日清食品", ""), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sig.Evaluate(tt.ctx); got.Bonus != tt.want {
				t.Errorf("Evaluate() bonus = %v, want %v", got.Bonus, tt.want)
			}
		})
	}
}

func TestBrandSignal_OCRFallback(t *testing.T) {
	w := DefaultWeights()
	sig := NewBrandSignal(w, testResolver)

	tests := []struct {
		name string
		ctx  *SignalContext
		want float64
	}{
		{"maker contained in detected text", brandCtx("日清食品", "", "日清食品", "カップヌードル"), w.BrandBonus},
		{"fuzzy token match", brandCtx("エースコック", "", "エースコッワ"), w.BrandBonus},
		{"short tokens skip fuzzy", brandCtx("エースコック", "", "エー"), 0},
		{"unmatched hint falls back to detected text", brandCtx("日清食品", "peyoung", "日清食品"), w.BrandBonus},
		{"empty maker", brandCtx("", "", "日清食品"), 0},
		{"nothing matches", brandCtx("日清食品", "", "まったく別"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sig.Evaluate(tt.ctx); got.Bonus != tt.want {
				t.Errorf("Evaluate() bonus = %v, want %v", got.Bonus, tt.want)
			}
		})
	}
}

func TestBrandSignal_AtMostOnce(t *testing.T) {
	w := DefaultWeights()
	sig := NewBrandSignal(w, testResolver)

	// Both the hint and the detected text match the maker; the bonus must
	// not be double-counted.
	ctx := brandCtx("日清食品", "nissin", "日清食品")
	got := sig.Evaluate(ctx)
	if got.Bonus != w.BrandBonus {
		t.Errorf("Evaluate() bonus = %v, want exactly %v", got.Bonus, w.BrandBonus)
	}
}

func nameCtx(name string, hints models.UserHints, detected ...string) *SignalContext {
	return &SignalContext{
		Product:  &models.Product{Name: name},
		Hints:    hints,
		Detected: models.DetectedText(detected),
	}
}

func TestNameSignal(t *testing.T) {
	w := DefaultWeights()
	sig := NewNameSignal(w)

	tests := []struct {
		name string
		ctx  *SignalContext
		want float64
	}{
		{
			"name hint substring, case-insensitive",
			nameCtx("Cup Noodle BIG", models.UserHints{Name: "cup noodle"}),
			w.NameBonus,
		},
		{
			"keyword hint shares the path",
			nameCtx("カップヌードル 醤油", models.UserHints{Keyword: "醤油"}),
			w.NameBonus,
		},
		{
			"product name in detected text",
			nameCtx("BIG", models.UserHints{}, "カップヌードル", "BIG"),
			w.NameBonus,
		},
		{
			"detected token of two runes in name",
			nameCtx("どん兵衛 きつねうどん", models.UserHints{}, "兵衛"),
			w.NameBonus,
		},
		{
			"single-rune token ignored",
			nameCtx("どん兵衛", models.UserHints{}, "ど"),
			0,
		},
		{
			"fuzzy token match",
			nameCtx("ペヤングソース焼そば", models.UserHints{}, "ペヤングソース焼そ"),
			w.NameBonus,
		},
		{
			"no match at all",
			nameCtx("緑のたぬき", models.UserHints{Name: "赤いきつね"}, "別物"),
			0,
		},
		{
			"empty name",
			nameCtx("", models.UserHints{}, "カップヌードル"),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sig.Evaluate(tt.ctx); got.Bonus != tt.want {
				t.Errorf("Evaluate() bonus = %v, want %v", got.Bonus, tt.want)
			}
		})
	}
}

func priceCtx(productPrice, hintPrice string) *SignalContext {
	return &SignalContext{
		Product: &models.Product{Price: productPrice},
		Hints:   models.UserHints{Price: hintPrice},
	}
}

func TestPriceSignal(t *testing.T) {
	w := DefaultWeights() // near: 10%, far: 30%

	tests := []struct {
		name    string
		product string
		hint    string
		want    float64
	}{
		{"exact price", "248", "248", w.PriceBonusNear},
		{"within near threshold", "248", "250", w.PriceBonusNear},
		{"near boundary inclusive", "110", "100", w.PriceBonusNear},
		{"within far threshold", "125", "100", w.PriceBonusFar},
		{"far boundary inclusive", "130", "100", w.PriceBonusFar},
		{"beyond far threshold", "200", "100", 0},
		{"non-numeric hint skipped", "248", "abc", 0},
		{"non-numeric product price skipped", "未定", "248", 0},
		{"negative hint skipped", "248", "-5", 0},
		{"zero target means no bonus", "0", "0", 0},
		{"empty hint", "248", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := NewPriceSignal(w)
			got := sig.Evaluate(priceCtx(tt.product, tt.hint))
			if got.Bonus != tt.want {
				t.Errorf("Evaluate() bonus = %v, want %v", got.Bonus, tt.want)
			}
		})
	}
}

func ocrCtx(p *models.Product, detected ...string) *SignalContext {
	return &SignalContext{Product: p, Detected: models.DetectedText(detected)}
}

func TestOCRSignal_Tiers(t *testing.T) {
	w := DefaultWeights() // minimum: 20, fair: 40, good: 60

	product := &models.Product{Name: "alpha beta gamma delta epsilon"}

	tests := []struct {
		name      string
		detected  []string
		wantBonus float64
		wantRatio float64
	}{
		{"all five match", []string{"alpha", "beta", "gamma", "delta", "epsilon"}, w.OCRBonusGood, 100},
		{"three of five is good", []string{"alpha", "beta", "gamma"}, w.OCRBonusGood, 60},
		{"two of five is fair", []string{"alpha", "beta"}, w.OCRBonusFair, 40},
		{"one of five is poor", []string{"alpha"}, w.OCRBonusPoor, 20},
		{"below minimum still records ratio", []string{"alpha", "x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8", "x9"}, 0, 10},
		{"no overlap", []string{"zeta"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := NewOCRSignal(w)
			got := sig.Evaluate(ocrCtx(product, tt.detected...))
			if got.Bonus != tt.wantBonus {
				t.Errorf("Evaluate() bonus = %v, want %v", got.Bonus, tt.wantBonus)
			}
			if got.MatchRatio != tt.wantRatio {
				t.Errorf("Evaluate() match ratio = %v, want %v", got.MatchRatio, tt.wantRatio)
			}
		})
	}
}

func TestOCRSignal_BoundaryInclusive(t *testing.T) {
	w := DefaultWeights()
	w.OCRThresholdGood = 50
	sig := NewOCRSignal(w)

	// Exactly one of two tokens matches: ratio is exactly the threshold.
	got := sig.Evaluate(ocrCtx(&models.Product{Name: "alpha other"}, "alpha", "unrelated"))
	if got.MatchRatio != 50 {
		t.Fatalf("match ratio = %v, want 50", got.MatchRatio)
	}
	if got.Bonus != w.OCRBonusGood {
		t.Errorf("ratio equal to the good threshold must award the good bonus, got %v", got.Bonus)
	}
}

func TestOCRSignal_FuzzyPairingOneToOne(t *testing.T) {
	w := DefaultWeights()
	sig := NewOCRSignal(w)

	// Two detected tokens both fuzzy-match the single catalog token
	// "peyoung"; only one pairing may be counted.
	product := &models.Product{Name: "peyoung other1 other2 other3"}
	got := sig.Evaluate(ocrCtx(product, "peyong", "peyoungg", "x1", "x2"))
	if got.MatchRatio != 25 {
		t.Errorf("match ratio = %v, want 25 (one fuzzy pair out of four)", got.MatchRatio)
	}
}

func TestOCRSignal_CatalogOCRLines(t *testing.T) {
	w := DefaultWeights()
	sig := NewOCRSignal(w)

	product := &models.Product{
		Name:     "カップヌードル",
		Maker:    "日清食品",
		OCRLines: `[{"text":"BIG"},{"text":"しょうゆ"}]`,
	}
	// Catalog set: カップヌードル, 日清食品, big, しょうゆ. Detected matches 2 of 4.
	got := sig.Evaluate(ocrCtx(product, "big", "しょうゆ"))
	if got.MatchRatio != 50 {
		t.Errorf("match ratio = %v, want 50", got.MatchRatio)
	}
	if got.Bonus != w.OCRBonusFair {
		t.Errorf("bonus = %v, want fair tier %v", got.Bonus, w.OCRBonusFair)
	}
}

func TestOCRSignal_MalformedOCRLines(t *testing.T) {
	w := DefaultWeights()
	sig := NewOCRSignal(w)

	product := &models.Product{Name: "alpha", OCRLines: `{"not": "a list"`}
	got := sig.Evaluate(ocrCtx(product, "alpha"))
	if got.MatchRatio != 100 {
		t.Errorf("malformed ocr_lines must degrade to an empty set, ratio = %v", got.MatchRatio)
	}
}

func TestOCRSignal_EmptySets(t *testing.T) {
	w := DefaultWeights()
	sig := NewOCRSignal(w)

	if got := sig.Evaluate(ocrCtx(&models.Product{Name: "alpha"})); got.MatchRatio != 0 || got.Bonus != 0 {
		t.Errorf("empty detected set must yield zero, got ratio %v bonus %v", got.MatchRatio, got.Bonus)
	}
	if got := sig.Evaluate(ocrCtx(&models.Product{}, "alpha")); got.MatchRatio != 0 || got.Bonus != 0 {
		t.Errorf("empty catalog set must yield zero, got ratio %v bonus %v", got.MatchRatio, got.Bonus)
	}
}
