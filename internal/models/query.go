package models

import "strings"

// UserHints are the optional text hints submitted alongside the photo.
// All fields may be empty; Price is kept as the raw string and parsed
// leniently by the price signal.
type UserHints struct {
	Name    string `json:"name,omitempty"`
	Price   string `json:"price,omitempty"`
	Brand   string `json:"brand,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

// Empty reports whether no hint was supplied.
func (h UserHints) Empty() bool {
	return h.Name == "" && h.Price == "" && h.Brand == "" && h.Keyword == ""
}

// DetectedText is the ordered list of tokens the recognizer read from the
// submitted photo. May be empty.
type DetectedText []string

// Joined returns the space-joined form used in responses and containment
// checks.
func (d DetectedText) Joined() string {
	return strings.Join(d, " ")
}
