package models

// DailyStat is one day of the analytics time series.
type DailyStat struct {
	Date              string `json:"date"`
	NewsRequests      int    `json:"news_requests"`
	UserRegistrations int    `json:"user_registrations"`
	FeedbackCount     int    `json:"feedback_count"`
}

// AnalyticsReport is the aggregate stats view for administrators.
type AnalyticsReport struct {
	TotalUsers      int         `json:"total_users"`
	ActiveUsers     int         `json:"active_users"`
	TotalRequests   int         `json:"total_news_requests"`
	TotalFeedback   int         `json:"total_feedback"`
	ReliableCount   int         `json:"reliable_news_count"`
	UnreliableCount int         `json:"unreliable_news_count"`
	FeedbackRatio   float64     `json:"feedback_ratio"`
	DailyStats      []DailyStat `json:"daily_stats,omitempty"`
}

// BlockedIP is one entry of the blocked-addresses list.
type BlockedIP struct {
	IPAddress    string `json:"ip_address"`
	Reason       string `json:"reason"`
	BlockedUntil string `json:"blocked_until"`
}
