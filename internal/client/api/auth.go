package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

// Register creates an account. The response carries the token pair directly,
// so no follow-up login call is needed.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var out models.AuthResponse
	if err := c.doNoAuth(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}

	var out models.AuthResponse
	if err := c.doNoAuth(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser resolves the identity behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileUpdate is a partial profile mutation. Nil fields are left untouched
// by the server.
type ProfileUpdate struct {
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	var out struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/me", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout invalidates the refresh token server-side. Callers treat failures
// as best-effort; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var body any
	if refreshToken != "" {
		body = map[string]string{"refresh_token": refreshToken}
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, body, nil)
}
