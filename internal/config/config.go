// Package config provides configuration loading for the Mono-Log server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mono-log/monolog/internal/scoring"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool            `yaml:"debug"`
	Server  ServerConfig    `yaml:"server"`
	Storage StorageConfig   `yaml:"storage"`
	Encoder EncoderConfig   `yaml:"encoder"`
	OCR     OCRConfig       `yaml:"ocr"`
	Search  SearchConfig    `yaml:"search"`
	Scoring scoring.Weights `yaml:"scoring"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the catalog database and the embedding index.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	IndexPath    string `yaml:"index_path"`
	IndexType    string `yaml:"index_type"` // memory (default) or faiss
}

// EncoderConfig holds CLIP image encoder settings.
type EncoderConfig struct {
	Type       string `yaml:"type"` // onnx (default) or mock
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	Type           string `yaml:"type"` // remote (default), mock or none
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SearchConfig holds retrieval and response settings.
type SearchConfig struct {
	// RetrievalSize is how many nearest neighbors are pulled from the
	// index before re-ranking.
	RetrievalSize int `yaml:"retrieval_size"`
	// ResultLimit caps the ranked results returned to the caller.
	ResultLimit int `yaml:"result_limit"`
	// SnapshotPath is where the last search response is written for
	// debugging. Empty disables snapshots.
	SnapshotPath string `yaml:"snapshot_path"`
}

// Load reads and parses the config file at path, applies environment
// overrides and defaults, and expands relative paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.IndexPath = expandPath(cfg.Storage.IndexPath, configDir)
	cfg.Encoder.ModelPath = expandPath(cfg.Encoder.ModelPath, configDir)
	if cfg.Search.SnapshotPath != "" {
		cfg.Search.SnapshotPath = expandPath(cfg.Search.SnapshotPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
