// Package search provides the image search pipeline: encode, retrieve,
// re-rank.
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mono-log/monolog/internal/catalog"
	"github.com/mono-log/monolog/internal/config"
	"github.com/mono-log/monolog/internal/encoder"
	"github.com/mono-log/monolog/internal/models"
	"github.com/mono-log/monolog/internal/ocr"
	"github.com/mono-log/monolog/internal/scoring"
	"github.com/mono-log/monolog/internal/vector"
)

// Engine runs a search request end to end: the query image is encoded and
// OCR'd concurrently, nearest neighbors are pulled from the index, hydrated
// from the catalog and re-ranked by the scoring engine.
type Engine struct {
	store      catalog.Store
	encoder    encoder.ImageEncoder
	index      vector.Index
	recognizer ocr.Recognizer
	scorer     *scoring.Engine
	config     *config.SearchConfig
	logger     *zap.Logger
}

// NewEngine creates a search engine with the given dependencies. A nil
// recognizer disables OCR; a nil logger disables logging.
func NewEngine(
	store catalog.Store,
	enc encoder.ImageEncoder,
	index vector.Index,
	recognizer ocr.Recognizer,
	scorer *scoring.Engine,
	cfg *config.SearchConfig,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:      store,
		encoder:    enc,
		index:      index,
		recognizer: recognizer,
		scorer:     scorer,
		config:     cfg,
		logger:     logger,
	}
}

// Search processes a query image with optional hints and returns the ranked
// response. Encoding failure fails the request; OCR failure degrades to an
// empty detected-text list.
func (e *Engine) Search(ctx context.Context, image []byte, hints models.UserHints) (*models.SearchResponse, error) {
	startTime := time.Now()

	var (
		embedding []float32
		detected  models.DetectedText
		errChan   = make(chan error, 1)
		wg        sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		emb, err := e.encoder.Encode(ctx, image)
		if err != nil {
			errChan <- fmt.Errorf("image encoding failed: %w", err)
			return
		}
		embedding = emb
	}()

	if e.recognizer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			texts, err := e.recognizer.Recognize(ctx, image)
			if err != nil {
				// OCR is a bonus signal; a dead OCR service must not
				// fail the search.
				e.logger.Warn("OCR failed, continuing without detected text", zap.Error(err))
				return
			}
			detected = texts
		}()
	}

	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	hits, err := e.index.Search(ctx, embedding, e.config.RetrievalSize)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	candidates, err := e.hydrate(ctx, hits)
	if err != nil {
		return nil, err
	}

	scored := e.scorer.ScoreAll(candidates, hints, detected)
	scoring.Rank(scored)
	top := scoring.TopN(scored, e.config.ResultLimit)

	response := &models.SearchResponse{
		Status:       "success",
		DetectedText: detected.Joined(),
		Results:      make([]*models.ResultItem, 0, len(top)),
		QueryTime:    time.Since(startTime).Milliseconds(),
	}
	for _, r := range top {
		response.Results = append(response.Results, &models.ResultItem{
			Product:         r.Candidate.Product,
			SimilarityScore: r.Candidate.Similarity,
			FinalScore:      r.FinalScore,
		})
	}

	e.writeSnapshot(response, hints, top)

	return response, nil
}

// hydrate resolves index hits into catalog-backed candidates, keeping the
// retrieval order. Hits whose product vanished from the catalog are dropped.
func (e *Engine) hydrate(ctx context.Context, hits []*vector.Hit) ([]*models.Candidate, error) {
	if len(hits) == 0 {
		return nil, nil
	}
	ids := make([]string, len(hits))
	similarity := make(map[string]float64, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ID
		similarity[hit.ID] = vector.SimilarityFromDistance(hit.Distance)
	}

	products, err := e.store.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	candidates := make([]*models.Candidate, 0, len(products))
	for _, product := range products {
		candidates = append(candidates, &models.Candidate{
			Product:    product,
			Similarity: similarity[product.ID],
		})
	}
	return candidates, nil
}

// writeSnapshot persists the last response for debugging. Best effort: a
// snapshot failure is logged and otherwise ignored.
func (e *Engine) writeSnapshot(response *models.SearchResponse, hints models.UserHints, top []*scoring.ScoredResult) {
	if e.config.SnapshotPath == "" {
		return
	}
	if err := WriteSnapshot(e.config.SnapshotPath, response, hints, top); err != nil {
		e.logger.Warn("failed to write result snapshot", zap.Error(err))
	}
}

// IndexSize returns the number of embeddings currently indexed.
func (e *Engine) IndexSize() int {
	return e.index.Size()
}
