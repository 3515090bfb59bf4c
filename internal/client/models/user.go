// Package models defines client-side data models mirroring the
// news-verification API wire format. Timestamps are kept as the ISO strings
// the server sends; the client never interprets them.
package models

// User is the account record mirrored read-only inside the session.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

// UserRef is the short author reference embedded in feedback entries.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned by both register and login. Register returns its
// own token pair directly; no second login round trip is needed.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

// UserPage is one page of the admin users list.
type UserPage struct {
	Items       []User `json:"items"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
}
