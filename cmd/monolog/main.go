// Package main is the Mono-Log CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mono-log/monolog/internal/brand"
	"github.com/mono-log/monolog/internal/catalog"
	"github.com/mono-log/monolog/internal/cli"
	"github.com/mono-log/monolog/internal/config"
	"github.com/mono-log/monolog/internal/encoder"
	"github.com/mono-log/monolog/internal/models"
	"github.com/mono-log/monolog/internal/ocr"
	"github.com/mono-log/monolog/internal/scoring"
	"github.com/mono-log/monolog/internal/search"
	"github.com/mono-log/monolog/internal/server"
	"github.com/mono-log/monolog/internal/vector"
	"github.com/mono-log/monolog/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/monolog/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "monolog server" from the project dir uses the project's
// config (including debug). Returns the config and the path that was actually
// loaded (for saving, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	config.LoadDotEnv()
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "import":
		runImport()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("monolog version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (encoding, retrieval, scoring)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Engine, components.Store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Storage.IndexPath != "" && components.Index != nil {
		if err := components.Index.Save(cfg.Storage.IndexPath); err != nil {
			logger.Warn("embedding index save failed", zap.String("path", cfg.Storage.IndexPath), zap.Error(err))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// searchArgsReorder moves any flags (and their values) that appear after the
// image path to the front of the slice so that flag.Parse() sees them. Go's
// flag package stops at the first non-flag argument, so
// "monolog search photo.jpg -brand nissin" would otherwise leave -brand
// unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// printSearchUsage prints search subcommand usage and hint tips.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: monolog search [flags] <image-file>\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Hints are optional; any hint that matches the product raises its score.
  • --name raises products whose name contains the hint.
  • --brand accepts aliases ("nissin" matches 日清 products).
  • --price rewards products priced near the hint.

Examples:
  monolog search shelf-photo.jpg
  monolog search shelf-photo.jpg --brand nissin --price 248
  monolog search --output json shelf-photo.jpg
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	nameHint := fs.String("name", "", "product name hint")
	priceHint := fs.String("price", "", "expected price hint")
	brandHint := fs.String("brand", "", "brand hint (aliases accepted)")
	keywordHint := fs.String("keyword", "", "free-text keyword hint")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	imagePath := fs.Arg(0)

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	case "compact":
		format = cli.OutputCompact
	default:
		fmt.Printf("Unknown output format %q; use text, compact, or json\n", *outputFormat)
		os.Exit(1)
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
		os.Exit(1)
	}
	hints := models.UserHints{
		Name:    *nameHint,
		Price:   *priceHint,
		Brand:   *brandHint,
		Keyword: *keywordHint,
	}

	if *serverURL != "" {
		// Use HTTP API when server is running (avoids SQLite lock conflict).
		response, err := searchViaHTTP(*serverURL, filepath.Base(imagePath), image, hints)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	response, err := components.Engine.Search(context.Background(), image, hints)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// searchViaHTTP posts the image and hints as a multipart form to the running
// server, matching what the web frontend sends.
func searchViaHTTP(serverURL, filename string, image []byte, hints models.UserHints) (*models.SearchResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"name":    hints.Name,
		"price":   hints.Price,
		"brand":   hints.Brand,
		"keyword": hints.Keyword,
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(serverURL+"/api/v1/search", writer.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	reindex := fs.Bool("reindex", true, "encode product images and rebuild the embedding index after import")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: monolog import [flags] <catalog.json|catalog.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	n, err := catalog.ImportFile(ctx, components.Store, path)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d product(s) from %s\n", n, path)

	if !*reindex {
		return
	}
	indexed, err := indexProductImages(ctx, components, logger)
	if err != nil {
		fmt.Printf("Indexing failed: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.IndexPath != "" {
		if err := components.Index.Save(cfg.Storage.IndexPath); err != nil {
			fmt.Printf("Index save failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Indexed %d product image(s)\n", indexed)
}

// indexProductImages walks the catalog and adds an embedding for every product
// whose image file is readable. Products without an image (or with a missing
// file) are skipped with a warning; they stay searchable by catalog lookups
// only.
func indexProductImages(ctx context.Context, components *Components, logger *zap.Logger) (int, error) {
	const pageSize = 500
	indexed := 0
	for offset := 0; ; offset += pageSize {
		products, err := components.Store.ListProducts(ctx, offset, pageSize)
		if err != nil {
			return indexed, fmt.Errorf("list products: %w", err)
		}
		if len(products) == 0 {
			return indexed, nil
		}

		ids := make([]string, 0, len(products))
		vectors := make([][]float32, 0, len(products))
		for _, p := range products {
			if p.ImagePath == "" {
				continue
			}
			image, err := os.ReadFile(p.ImagePath)
			if err != nil {
				logger.Warn("skipping product, image unreadable",
					zap.String("id", p.ID), zap.String("path", p.ImagePath), zap.Error(err))
				continue
			}
			embedding, err := components.Encoder.Encode(ctx, image)
			if err != nil {
				logger.Warn("skipping product, encoding failed",
					zap.String("id", p.ID), zap.Error(err))
				continue
			}
			ids = append(ids, p.ID)
			vectors = append(vectors, embedding)
		}
		if len(ids) > 0 {
			if err := components.Index.Add(ctx, ids, vectors); err != nil {
				return indexed, fmt.Errorf("index add: %w", err)
			}
			indexed += len(ids)
		}
		if len(products) < pageSize {
			return indexed, nil
		}
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: monolog delete [flags] <product-id>")
		os.Exit(1)
	}
	productID := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	if err := components.Store.DeleteProduct(ctx, productID); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	if err := components.Index.Remove(ctx, []string{productID}); err != nil {
		logger.Warn("embedding removal failed", zap.String("id", productID), zap.Error(err))
	}
	if cfg.Storage.IndexPath != "" {
		if err := components.Index.Save(cfg.Storage.IndexPath); err != nil {
			logger.Warn("embedding index save failed", zap.Error(err))
		}
	}
	fmt.Printf("Product deleted: %s\n", productID)
}

// statusConfigResponse holds configuration info returned by status.
type statusConfigResponse struct {
	IndexType         string `json:"index_type"`
	EncoderDimensions int    `json:"encoder_dimensions,omitempty"`
	RetrievalSize     int    `json:"retrieval_size,omitempty"`
	ResultLimit       int    `json:"result_limit,omitempty"`
	DatabasePath      string `json:"database_path,omitempty"`
	IndexPath         string `json:"index_path,omitempty"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Products  int64                 `json:"products"`
	IndexSize int                   `json:"index_size"`
	Config    *statusConfigResponse `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		productCount, err := components.Store.CountProducts(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count products failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Products:  productCount,
			IndexSize: components.Engine.IndexSize(),
			Config: &statusConfigResponse{
				IndexType:         cfg.Storage.IndexType,
				EncoderDimensions: cfg.Encoder.Dimensions,
				RetrievalSize:     cfg.Search.RetrievalSize,
				ResultLimit:       cfg.Search.ResultLimit,
				DatabasePath:      cfg.Storage.DatabasePath,
				IndexPath:         cfg.Storage.IndexPath,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("products:     %d   # catalog entries\n", status.Products)
		fmt.Printf("index_size:   %d   # embeddings in the index\n", status.IndexSize)
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			fmt.Printf("index_type:      %s\n", status.Config.IndexType)
			if status.Config.EncoderDimensions > 0 {
				fmt.Printf("encoder_dims:    %d\n", status.Config.EncoderDimensions)
			}
			if status.Config.RetrievalSize > 0 {
				fmt.Printf("retrieval_size:  %d\n", status.Config.RetrievalSize)
			}
			if status.Config.ResultLimit > 0 {
				fmt.Printf("result_limit:    %d\n", status.Config.ResultLimit)
			}
			if status.Config.DatabasePath != "" {
				fmt.Printf("database_path:   %s\n", status.Config.DatabasePath)
			}
			if status.Config.IndexPath != "" {
				fmt.Printf("index_path:      %s\n", status.Config.IndexPath)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store      catalog.Store
	Encoder    encoder.ImageEncoder
	Index      vector.Index
	Recognizer ocr.Recognizer
	Engine     *search.Engine
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Encoder != nil {
		_ = c.Encoder.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Recognizer != nil {
		_ = c.Recognizer.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := catalog.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	var enc encoder.ImageEncoder
	switch cfg.Encoder.Type {
	case "mock":
		enc = encoder.NewMockEncoder(cfg.Encoder.Dimensions)
	default:
		onnxEncoder, err := encoder.NewONNXEncoder(cfg.Encoder.ModelPath, cfg.Encoder.Dimensions, cfg.Encoder.CacheSize)
		if err != nil {
			// No model (or no ONNX runtime) still gives a working server;
			// mock embeddings are deterministic but not semantic.
			if logger != nil {
				logger.Warn("ONNX encoder unavailable, falling back to mock",
					zap.String("model_path", cfg.Encoder.ModelPath), zap.Error(err))
			}
			enc = encoder.NewMockEncoder(cfg.Encoder.Dimensions)
		} else {
			enc = onnxEncoder
		}
	}

	index, err := vector.NewIndex(cfg.Storage.IndexType, cfg.Encoder.Dimensions)
	if err != nil {
		// Fall back to memory index if configured type fails (e.g., FAISS not available)
		if cfg.Storage.IndexType != "memory" && cfg.Storage.IndexType != "" {
			if logger != nil {
				logger.Warn("failed to create embedding index, falling back to memory",
					zap.String("requested_type", cfg.Storage.IndexType),
					zap.Error(err))
			}
			index, err = vector.NewIndex("memory", cfg.Encoder.Dimensions)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize embedding index: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to initialize embedding index: %w", err)
		}
	}
	if cfg.Storage.IndexPath != "" {
		if loadErr := index.Load(cfg.Storage.IndexPath); loadErr != nil && logger != nil {
			logger.Warn("embedding index load skipped (run import to rebuild)",
				zap.String("path", cfg.Storage.IndexPath), zap.Error(loadErr))
		}
	}
	if logger != nil {
		logger.Info("embedding index initialized",
			zap.String("type", cfg.Storage.IndexType),
			zap.Bool("faiss_available", vector.IsFAISSAvailable()))
	}

	var recognizer ocr.Recognizer
	switch cfg.OCR.Type {
	case "none":
		recognizer = nil
	case "mock":
		recognizer = &ocr.MockRecognizer{}
	default:
		recognizer = ocr.NewRemoteRecognizer(cfg.OCR.Endpoint, time.Duration(cfg.OCR.TimeoutSeconds)*time.Second)
	}

	scorer := scoring.NewEngine(&cfg.Scoring, brand.Resolve)
	engine := search.NewEngine(store, enc, index, recognizer, scorer, &cfg.Search, logger)

	return &Components{
		Store:      store,
		Encoder:    enc,
		Index:      index,
		Recognizer: recognizer,
		Engine:     engine,
	}, nil
}

func printUsage() {
	fmt.Println(`monolog - image-first product search for store shelf photos

Usage:
  monolog server [flags]            Start the HTTP server
  monolog search [flags] <image>    Search the catalog with a photo
  monolog import [flags] <file>     Import a product catalog (JSON or Excel)
  monolog delete [flags] <id>       Delete a product
  monolog status [flags]            Show catalog/index status
  monolog version                   Show version
  monolog help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/monolog/config.yaml)
  --debug            Enable debug logging (encoding, retrieval, scoring)

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to use direct storage when server is not running.
  --name string      Product name hint
  --price string     Expected price hint
  --brand string     Brand hint (aliases accepted, e.g. "nissin")
  --keyword string   Free-text keyword hint
  --output string    Output format: text, compact, or json (default: text)

Import Flags:
  --config string    Config file path
  --reindex          Encode product images and rebuild the embedding index (default: true)

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Examples:
  monolog server
  monolog import catalog.xlsx
  monolog search shelf-photo.jpg
  monolog search shelf-photo.jpg --brand nissin --price 248
  monolog search --output json shelf-photo.jpg
  monolog delete prod-123
  monolog status
  monolog status --output json`)
}
