package models

import "encoding/json"

// VerificationRecord is the result of one analyze request. Records are
// immutable from the client's perspective; only their feedback changes.
type VerificationRecord struct {
	ID         int64   `json:"id"`
	Content    string  `json:"content,omitempty"`
	IsURL      bool    `json:"is_url"`
	Result     string  `json:"result"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`

	// Details carries the analyzer's structured verdict verbatim; the client
	// renders it without interpreting the schema.
	Details json.RawMessage `json:"details,omitempty"`

	Feedback []FeedbackEntry `json:"feedback,omitempty"`
}

// RecordPage is one page of the verification history.
type RecordPage struct {
	Items       []VerificationRecord `json:"items"`
	Total       int                  `json:"total"`
	Pages       int                  `json:"pages"`
	CurrentPage int                  `json:"current_page"`
}
