package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mono-log/monolog/internal/models"
)

// RemoteRecognizer talks to a PaddleOCR-compatible serving endpoint over
// HTTP. Requests carry the image base64-encoded; the response is a list of
// recognized text lines.
type RemoteRecognizer struct {
	endpoint string
	client   *http.Client
}

// NewRemoteRecognizer creates a recognizer for the given endpoint URL.
// A zero timeout defaults to 30 seconds.
func NewRemoteRecognizer(endpoint string, timeout time.Duration) *RemoteRecognizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteRecognizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type ocrRequest struct {
	Image string `json:"image"`
}

type ocrResponse struct {
	Texts []string `json:"texts"`
}

// Recognize posts the image and returns the recognized lines. Empty lines
// are dropped.
func (r *RemoteRecognizer) Recognize(ctx context.Context, image []byte) (models.DetectedText, error) {
	body, err := json.Marshal(ocrRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return nil, fmt.Errorf("encode OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("OCR service returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var decoded ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode OCR response: %w", err)
	}

	texts := make(models.DetectedText, 0, len(decoded.Texts))
	for _, text := range decoded.Texts {
		if text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}

// Close is a no-op for RemoteRecognizer.
func (r *RemoteRecognizer) Close() error {
	return nil
}
