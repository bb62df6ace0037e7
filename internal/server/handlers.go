package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mono-log/monolog/internal/models"
)

// maxUploadBytes caps the in-memory part of a multipart upload.
const maxUploadBytes = 32 << 20

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	logger := s.logger.With(zap.String("request_id", requestID))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil || len(image) == 0 {
		s.respondError(w, http.StatusBadRequest, "failed to read image upload")
		return
	}

	hints := models.UserHints{
		Name:    r.FormValue("name"),
		Price:   r.FormValue("price"),
		Brand:   r.FormValue("brand"),
		Keyword: r.FormValue("keyword"),
	}
	logger.Debug("search request",
		zap.Int("image_bytes", len(image)),
		zap.String("brand_hint", hints.Brand),
		zap.String("name_hint", hints.Name))

	response, err := s.engine.Search(r.Context(), image, hints)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.RequestID = requestID
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

// handleLastResult serves the snapshot of the most recent search verbatim.
func (s *Server) handleLastResult(w http.ResponseWriter, r *http.Request) {
	path := s.config.Search.SnapshotPath
	if path == "" {
		s.respondError(w, http.StatusNotFound, "result snapshots are disabled")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "no search has been recorded yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	productCount, err := s.store.CountProducts(r.Context())
	if err != nil {
		s.logger.Error("status: count products failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"products":   productCount,
		"index_size": s.engine.IndexSize(),
		"config": map[string]interface{}{
			"index_type":         s.config.Storage.IndexType,
			"encoder_dimensions": s.config.Encoder.Dimensions,
			"retrieval_size":     s.config.Search.RetrievalSize,
			"result_limit":       s.config.Search.ResultLimit,
			"database_path":      s.config.Storage.DatabasePath,
			"index_path":         s.config.Storage.IndexPath,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse(message))
}
