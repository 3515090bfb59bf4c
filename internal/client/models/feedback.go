package models

// FeedbackEntry is a user's agreement/comment on a verification record.
type FeedbackEntry struct {
	ID                 int64    `json:"id"`
	User               *UserRef `json:"user,omitempty"`
	AgreesWithAnalysis bool     `json:"agrees_with_analysis"`
	Comment            string   `json:"comment,omitempty"`
	CreatedAt          string   `json:"created_at"`

	// Record is populated on the "my feedback" listing only.
	Record *RecordRef `json:"news_request,omitempty"`
}

// RecordRef is the short record reference embedded in "my feedback" rows.
type RecordRef struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Result  string `json:"analysis_result"`
}

// FeedbackPage is one page of a feedback listing.
type FeedbackPage struct {
	Items       []FeedbackEntry `json:"feedback"`
	Total       int             `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
}
