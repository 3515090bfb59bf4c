package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

type feedbackEnvelope struct {
	Message  string               `json:"message"`
	Feedback models.FeedbackEntry `json:"feedback"`
}

func (c *Client) SubmitFeedback(ctx context.Context, recordID int64, agrees bool, comment string) (*models.FeedbackEntry, error) {
	body := map[string]any{"agrees_with_analysis": agrees}
	if comment != "" {
		body["comment"] = comment
	}

	var out feedbackEnvelope
	path := fmt.Sprintf("/news/%d/feedback", recordID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Feedback, nil
}

func (c *Client) RecordFeedback(ctx context.Context, recordID int64) ([]models.FeedbackEntry, error) {
	var out struct {
		Feedback []models.FeedbackEntry `json:"feedback"`
	}
	path := fmt.Sprintf("/news/%d/feedback", recordID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Feedback, nil
}

// FeedbackUpdate is a partial feedback mutation; nil fields are untouched.
type FeedbackUpdate struct {
	AgreesWithAnalysis *bool   `json:"agrees_with_analysis,omitempty"`
	Comment            *string `json:"comment,omitempty"`
}

func (c *Client) UpdateFeedback(ctx context.Context, feedbackID int64, upd FeedbackUpdate) (*models.FeedbackEntry, error) {
	var out feedbackEnvelope
	path := fmt.Sprintf("/feedback/%d", feedbackID)
	if err := c.do(ctx, http.MethodPut, path, nil, upd, &out); err != nil {
		return nil, err
	}
	return &out.Feedback, nil
}

func (c *Client) DeleteFeedback(ctx context.Context, feedbackID int64) error {
	path := fmt.Sprintf("/feedback/%d", feedbackID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) MyFeedback(ctx context.Context, page, perPage int) (*models.FeedbackPage, error) {
	var out models.FeedbackPage
	if err := c.do(ctx, http.MethodGet, "/my/feedback", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
