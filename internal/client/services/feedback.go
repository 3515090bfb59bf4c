package services

import (
	"context"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

type feedbackAPI interface {
	SubmitFeedback(ctx context.Context, recordID int64, agrees bool, comment string) (*models.FeedbackEntry, error)
	RecordFeedback(ctx context.Context, recordID int64) ([]models.FeedbackEntry, error)
	UpdateFeedback(ctx context.Context, feedbackID int64, upd api.FeedbackUpdate) (*models.FeedbackEntry, error)
	DeleteFeedback(ctx context.Context, feedbackID int64) error
	MyFeedback(ctx context.Context, page, perPage int) (*models.FeedbackPage, error)
}

// FeedbackService mutates feedback and keeps the dependent views coherent:
// every mutation invalidates the affected record's views and the caller's
// own list, and nothing else.
type FeedbackService interface {
	Submit(ctx context.Context, recordID int64, agrees bool, comment string) (*models.FeedbackEntry, error)
	ForRecord(ctx context.Context, recordID int64) ([]models.FeedbackEntry, error)
	Update(ctx context.Context, feedbackID, recordID int64, upd api.FeedbackUpdate) (*models.FeedbackEntry, error)
	Delete(ctx context.Context, feedbackID, recordID int64) error
	Mine(ctx context.Context, page, perPage int) (*models.FeedbackPage, error)
}

type feedbackService struct {
	api   feedbackAPI
	cache *cache.Store
	log   logging.Logger
}

func NewFeedbackService(a feedbackAPI, c *cache.Store, log logging.Logger) FeedbackService {
	return &feedbackService{api: a, cache: c, log: log.With("component", "feedback")}
}

func (s *feedbackService) invalidateFor(recordID int64) {
	s.cache.Invalidate(cache.Record(recordID), cache.RecordFeedback(recordID), cache.MyFeedback)
}

func (s *feedbackService) Submit(ctx context.Context, recordID int64, agrees bool, comment string) (*models.FeedbackEntry, error) {
	entry, err := s.api.SubmitFeedback(ctx, recordID, agrees, comment)
	if err != nil {
		return nil, err
	}
	s.invalidateFor(recordID)
	return entry, nil
}

func (s *feedbackService) ForRecord(ctx context.Context, recordID int64) ([]models.FeedbackEntry, error) {
	if hit, ok := cache.Lookup[[]models.FeedbackEntry](s.cache, cache.RecordFeedback(recordID)); ok {
		return hit, nil
	}

	entries, err := s.api.RecordFeedback(ctx, recordID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.RecordFeedback(recordID), entries)
	return entries, nil
}

func (s *feedbackService) Update(ctx context.Context, feedbackID, recordID int64, upd api.FeedbackUpdate) (*models.FeedbackEntry, error) {
	entry, err := s.api.UpdateFeedback(ctx, feedbackID, upd)
	if err != nil {
		return nil, err
	}
	s.invalidateFor(recordID)
	return entry, nil
}

func (s *feedbackService) Delete(ctx context.Context, feedbackID, recordID int64) error {
	if err := s.api.DeleteFeedback(ctx, feedbackID); err != nil {
		return err
	}
	s.invalidateFor(recordID)
	return nil
}

func (s *feedbackService) Mine(ctx context.Context, page, perPage int) (*models.FeedbackPage, error) {
	if hit, ok := cache.Lookup[pagedEntry[*models.FeedbackPage]](s.cache, cache.MyFeedback); ok &&
		hit.page == page && hit.perPage == perPage {
		return hit.data, nil
	}

	result, err := s.api.MyFeedback(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.MyFeedback, pagedEntry[*models.FeedbackPage]{page: page, perPage: perPage, data: result})
	return result, nil
}
