package models

// ResultItem is one ranked search hit in the API response: the product
// metadata plus the request-scoped scores.
type ResultItem struct {
	*Product
	SimilarityScore float64 `json:"similarity_score"`
	FinalScore      float64 `json:"final_score"`
}

// SearchResponse is the payload for a search request.
type SearchResponse struct {
	Status string `json:"status"`
	// DetectedText is the space-joined recognized tokens, returned so the
	// caller can see what the recognizer read.
	DetectedText string        `json:"detected_text"`
	Results      []*ResultItem `json:"results"`
	// Message carries the failure reason when Status is "error".
	Message string `json:"message,omitempty"`
	// QueryTime is the total request processing time in milliseconds.
	QueryTime int64 `json:"query_time_ms,omitempty"`
	// RequestID correlates the response with server logs.
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse builds the failure payload surfaced to the caller.
func ErrorResponse(message string) *SearchResponse {
	return &SearchResponse{Status: "error", Message: message, Results: []*ResultItem{}}
}
