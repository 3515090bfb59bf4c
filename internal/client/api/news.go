package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}

// Analyze submits content (raw text or a URL) for verification and returns
// the created record.
func (c *Client) Analyze(ctx context.Context, content string) (*models.VerificationRecord, error) {
	body := map[string]string{"content": content}

	var out models.VerificationRecord
	if err := c.do(ctx, http.MethodPost, "/news/analyze", nil, body, &out); err != nil {
		return nil, err
	}
	// the server echoes only the verdict; keep the submitted content on the
	// record so local caching has the full row
	if out.Content == "" {
		out.Content = content
	}
	return &out, nil
}

func (c *Client) History(ctx context.Context, page, perPage int) (*models.RecordPage, error) {
	var out models.RecordPage
	if err := c.do(ctx, http.MethodGet, "/news/history", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecordDetails(ctx context.Context, id int64) (*models.VerificationRecord, error) {
	var out models.VerificationRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/news/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
