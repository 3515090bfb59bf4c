// Package services contains application services for the newscheck client:
// thin orchestration between the API gateway, the query cache, and local
// storage. Mutations invalidate exactly the keys in their blast radius.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/records"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// pagedEntry remembers which page a cached listing holds, so a hit is only
// served for the same page request.
type pagedEntry[T any] struct {
	page    int
	perPage int
	data    T
}

type newsAPI interface {
	Analyze(ctx context.Context, content string) (*models.VerificationRecord, error)
	History(ctx context.Context, page, perPage int) (*models.RecordPage, error)
	RecordDetails(ctx context.Context, id int64) (*models.VerificationRecord, error)
}

// NewsService verifies content and browses history, keeping a local copy of
// fetched records so history stays readable offline.
type NewsService interface {
	Verify(ctx context.Context, content string) (*models.VerificationRecord, error)

	// History returns one page. The offline flag reports that the server was
	// unreachable and the page came from the local record cache.
	History(ctx context.Context, page, perPage int) (page_ *models.RecordPage, offline bool, err error)

	Details(ctx context.Context, id int64) (*models.VerificationRecord, error)
}

type newsService struct {
	api     newsAPI
	cache   *cache.Store
	records records.Repository
	log     logging.Logger
}

func NewNewsService(a newsAPI, c *cache.Store, r records.Repository, log logging.Logger) NewsService {
	return &newsService{api: a, cache: c, records: r, log: log.With("component", "news")}
}

func (s *newsService) Verify(ctx context.Context, content string) (*models.VerificationRecord, error) {
	rec, err := s.api.Analyze(ctx, content)
	if err != nil {
		return nil, err
	}

	// a new record makes the cached history stale
	s.cache.Invalidate(cache.History)

	if err := s.records.Upsert(ctx, []models.VerificationRecord{*rec}); err != nil {
		s.log.Warn(ctx, "failed to cache record locally", "id", rec.ID, "error", err)
	}
	return rec, nil
}

func (s *newsService) History(ctx context.Context, page, perPage int) (*models.RecordPage, bool, error) {
	if hit, ok := cache.Lookup[pagedEntry[*models.RecordPage]](s.cache, cache.History); ok &&
		hit.page == page && hit.perPage == perPage {
		return hit.data, false, nil
	}

	result, err := s.api.History(ctx, page, perPage)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return s.offlineHistory(ctx, page, perPage)
		}
		return nil, false, err
	}

	s.cache.Put(cache.History, pagedEntry[*models.RecordPage]{page: page, perPage: perPage, data: result})

	if err := s.records.Upsert(ctx, result.Items); err != nil {
		s.log.Warn(ctx, "failed to cache history locally", "error", err)
	}
	return result, false, nil
}

func (s *newsService) offlineHistory(ctx context.Context, page, perPage int) (*models.RecordPage, bool, error) {
	items, err := s.records.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, false, err
	}
	return &models.RecordPage{Items: items, Total: len(items), CurrentPage: page}, true, nil
}

func (s *newsService) Details(ctx context.Context, id int64) (*models.VerificationRecord, error) {
	if hit, ok := cache.Lookup[*models.VerificationRecord](s.cache, cache.Record(id)); ok {
		return hit, nil
	}

	rec, err := s.api.RecordDetails(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return s.records.Get(ctx, id)
		}
		return nil, err
	}

	s.cache.Put(cache.Record(id), rec)
	return rec, nil
}
