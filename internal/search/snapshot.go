package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mono-log/monolog/internal/models"
	"github.com/mono-log/monolog/internal/scoring"
)

// Snapshot is the debug record of the last search: the response as sent to
// the caller plus the hints and the per-result score breakdowns.
type Snapshot struct {
	Timestamp  time.Time                     `json:"timestamp"`
	Hints      models.UserHints              `json:"hints"`
	Response   *models.SearchResponse        `json:"response"`
	Breakdowns map[string]*scoring.Breakdown `json:"breakdowns"`
}

// WriteSnapshot writes the snapshot atomically: to a temp file in the same
// directory first, then renamed over the target, so a reader never sees a
// partial file.
func WriteSnapshot(path string, response *models.SearchResponse, hints models.UserHints, results []*scoring.ScoredResult) error {
	breakdowns := make(map[string]*scoring.Breakdown, len(results))
	for _, r := range results {
		breakdowns[r.Candidate.Product.ID] = r.Breakdown
	}
	snapshot := &Snapshot{
		Timestamp:  time.Now(),
		Hints:      hints,
		Response:   response,
		Breakdowns: breakdowns,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot returns the raw bytes of the last written snapshot.
func ReadSnapshot(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
