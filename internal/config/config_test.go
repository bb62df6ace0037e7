package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
scoring:
  base_score_weight: 0.4
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
	if cfg.Scoring.BaseScoreWeight != 0.4 {
		t.Errorf("base_score_weight = %v, want 0.4", cfg.Scoring.BaseScoreWeight)
	}
	// Untouched scoring thresholds get their defaults.
	if cfg.Scoring.SimilarityThreshold != 0.8 {
		t.Errorf("similarity_threshold = %v, want default 0.8", cfg.Scoring.SimilarityThreshold)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "./data/db/catalog.db"
search:
  snapshot_path: "./data/response.json"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantDB := filepath.Join(dir, "data", "db", "catalog.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Errorf("database_path = %s, want %s", cfg.Storage.DatabasePath, wantDB)
	}
	wantSnap := filepath.Join(dir, "data", "response.json")
	if cfg.Search.SnapshotPath != wantSnap {
		t.Errorf("snapshot_path = %s, want %s", cfg.Search.SnapshotPath, wantSnap)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "localhost"
  port: 8080
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MONOLOG_PORT", "9999")
	t.Setenv("MONOLOG_DEBUG", "true")
	t.Setenv("MONOLOG_OCR_ENDPOINT", "http://ocr.internal:8866/predict")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
	if !cfg.Debug {
		t.Error("debug should be overridden to true")
	}
	if cfg.OCR.Endpoint != "http://ocr.internal:8866/predict" {
		t.Errorf("ocr endpoint = %s", cfg.OCR.Endpoint)
	}
}

func TestLoad_ScoringEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
scoring:
  base_score_weight: 0.4
  brand_bonus: 0.2
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MONOLOG_BRAND_BONUS", "0.25")
	t.Setenv("MONOLOG_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("MONOLOG_OCR_BONUS_GOOD", "nonsense")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scoring.BaseScoreWeight != 0.4 {
		t.Errorf("base_score_weight = %v, want file value 0.4", cfg.Scoring.BaseScoreWeight)
	}
	if cfg.Scoring.BrandBonus != 0.25 {
		t.Errorf("brand_bonus = %v, want env override 0.25", cfg.Scoring.BrandBonus)
	}
	if cfg.Scoring.SimilarityThreshold != 0.9 {
		t.Errorf("similarity_threshold = %v, want env override 0.9", cfg.Scoring.SimilarityThreshold)
	}
	if cfg.Scoring.OCRBonusGood != 0.05 {
		t.Errorf("ocr_bonus_good = %v, unparseable env value should fall back to default", cfg.Scoring.OCRBonusGood)
	}
}

func TestLoad_BadEnvValueIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8081
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MONOLOG_PORT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("port = %d, unparseable env value should be ignored", cfg.Server.Port)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Storage.IndexType != "memory" {
		t.Errorf("default index type: got %s", cfg.Storage.IndexType)
	}
	if cfg.Encoder.Dimensions != 512 {
		t.Errorf("default encoder dimensions: got %d", cfg.Encoder.Dimensions)
	}
	if cfg.OCR.TimeoutSeconds != 30 {
		t.Errorf("default ocr timeout: got %d", cfg.OCR.TimeoutSeconds)
	}
	if cfg.Search.RetrievalSize != 50 {
		t.Errorf("default retrieval size: got %d", cfg.Search.RetrievalSize)
	}
	if cfg.Search.ResultLimit != 20 {
		t.Errorf("default result limit: got %d", cfg.Search.ResultLimit)
	}
	if cfg.Scoring.BaseScoreWeight != 0.3 {
		t.Errorf("default base_score_weight: got %v", cfg.Scoring.BaseScoreWeight)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 9090},
		Storage: StorageConfig{DatabasePath: "/tmp/db"},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
}
