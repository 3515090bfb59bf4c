package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

func (c *Client) AdminUsers(ctx context.Context, page, perPage int) (*models.UserPage, error) {
	var out models.UserPage
	if err := c.do(ctx, http.MethodGet, "/admin/users", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUserUpdate toggles account flags; nil fields are untouched.
type AdminUserUpdate struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsAdmin  *bool `json:"is_admin,omitempty"`
}

func (c *Client) AdminUpdateUser(ctx context.Context, userID int64, upd AdminUserUpdate) (*models.User, error) {
	var out struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	path := fmt.Sprintf("/admin/users/%d", userID)
	if err := c.do(ctx, http.MethodPut, path, nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) AdminAnalytics(ctx context.Context, days int) (*models.AnalyticsReport, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	var out models.AnalyticsReport
	if err := c.do(ctx, http.MethodGet, "/admin/analytics", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminBlockedIPs(ctx context.Context) ([]models.BlockedIP, error) {
	var out struct {
		BlockedIPs []models.BlockedIP `json:"blocked_ips"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/blocked-ips", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.BlockedIPs, nil
}

func (c *Client) AdminUnblockIP(ctx context.Context, ip string) error {
	path := "/admin/blocked-ips/" + url.PathEscape(ip)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
