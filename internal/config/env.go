package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is fine; existing variables win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides lets MONOLOG_* environment variables override file
// values. Unparseable values are ignored so a bad variable cannot take the
// server down.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MONOLOG_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("MONOLOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MONOLOG_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}
	if v := os.Getenv("MONOLOG_DATABASE_PATH"); v != "" {
		cfg.Storage.DatabasePath = v
	}
	if v := os.Getenv("MONOLOG_INDEX_PATH"); v != "" {
		cfg.Storage.IndexPath = v
	}
	if v := os.Getenv("MONOLOG_MODEL_PATH"); v != "" {
		cfg.Encoder.ModelPath = v
	}
	if v := os.Getenv("MONOLOG_OCR_ENDPOINT"); v != "" {
		cfg.OCR.Endpoint = v
	}
	if v := os.Getenv("MONOLOG_SNAPSHOT_PATH"); v != "" {
		cfg.Search.SnapshotPath = v
	}

	applyScoringOverrides(cfg)
}

// applyScoringOverrides reads the env-style scoring surface. ApplyDefaults
// runs after this, so an unparseable or out-of-range value ends up at the
// documented default rather than killing the process.
func applyScoringOverrides(cfg *Config) {
	s := &cfg.Scoring
	for _, o := range []struct {
		key string
		dst *float64
	}{
		{"MONOLOG_BASE_SCORE_WEIGHT", &s.BaseScoreWeight},
		{"MONOLOG_BRAND_BONUS", &s.BrandBonus},
		{"MONOLOG_NAME_BONUS", &s.NameBonus},
		{"MONOLOG_PRICE_BONUS_NEAR", &s.PriceBonusNear},
		{"MONOLOG_PRICE_BONUS_FAR", &s.PriceBonusFar},
		{"MONOLOG_PRICE_THRESHOLD_NEAR", &s.PriceThresholdNear},
		{"MONOLOG_PRICE_THRESHOLD_FAR", &s.PriceThresholdFar},
		{"MONOLOG_OCR_BONUS_POOR", &s.OCRBonusPoor},
		{"MONOLOG_OCR_BONUS_FAIR", &s.OCRBonusFair},
		{"MONOLOG_OCR_BONUS_GOOD", &s.OCRBonusGood},
		{"MONOLOG_OCR_THRESHOLD_MINIMUM", &s.OCRThresholdMinimum},
		{"MONOLOG_OCR_THRESHOLD_FAIR", &s.OCRThresholdFair},
		{"MONOLOG_OCR_THRESHOLD_GOOD", &s.OCRThresholdGood},
		{"MONOLOG_SIMILARITY_THRESHOLD", &s.SimilarityThreshold},
	} {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*o.dst = f
		}
	}
}
