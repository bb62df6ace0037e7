package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/monolog/data/db/catalog.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/monolog/data/indices/embeddings"
	}
	if cfg.Storage.IndexType == "" {
		cfg.Storage.IndexType = "memory"
	}
	if cfg.Encoder.Type == "" {
		cfg.Encoder.Type = "onnx"
	}
	if cfg.Encoder.ModelPath == "" {
		cfg.Encoder.ModelPath = "/usr/local/var/monolog/data/models/clip-vit-b32-visual.onnx"
	}
	if cfg.Encoder.Dimensions == 0 {
		cfg.Encoder.Dimensions = 512
	}
	if cfg.Encoder.CacheSize == 0 {
		cfg.Encoder.CacheSize = 10000
	}
	if cfg.OCR.Type == "" {
		cfg.OCR.Type = "remote"
	}
	if cfg.OCR.TimeoutSeconds == 0 {
		cfg.OCR.TimeoutSeconds = 30
	}
	if cfg.Search.RetrievalSize == 0 {
		cfg.Search.RetrievalSize = 50
	}
	if cfg.Search.ResultLimit == 0 {
		cfg.Search.ResultLimit = 20
	}
	cfg.Scoring.ApplyDefaults()
}
