// Package cli provides CLI output utilities for Mono-Log.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mono-log/monolog/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact is one result per line, for piping into other tools.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms\n", len(response.Results), response.QueryTime)
	if response.DetectedText != "" {
		fmt.Fprintf(w, "Detected text: %s\n", response.DetectedText)
	}
	fmt.Fprintln(w)
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.ResultItem) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f (Similarity: %.4f)\n", rank, result.FinalScore, result.SimilarityScore)
	fmt.Fprintf(w, "ID: %s\n", result.ID)
	fmt.Fprintf(w, "Name: %s\n", Truncate(result.Name, 120))
	if result.Maker != "" {
		fmt.Fprintf(w, "Maker: %s\n", result.Maker)
	}
	if result.Price != "" {
		fmt.Fprintf(w, "Price: %s\n", result.Price)
	}
	if result.ProductURL != "" {
		fmt.Fprintf(w, "URL: %s\n", result.ProductURL)
	}
	fmt.Fprintln(w)
}

// writeSearchResultsCompact writes one tab-separated line per result:
// rank, final score, similarity, id, name.
func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i, result := range response.Results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%s\t%s\n",
			i+1, result.FinalScore, result.SimilarityScore, result.ID, result.Name)
	}
}

// PrintSearchResults prints search results to stdout in text format (backward compatible).
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen bytes on a rune boundary and appends "..."
// if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
