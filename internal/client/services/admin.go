package services

import (
	"context"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

type adminAPI interface {
	AdminUsers(ctx context.Context, page, perPage int) (*models.UserPage, error)
	AdminUpdateUser(ctx context.Context, userID int64, upd api.AdminUserUpdate) (*models.User, error)
	AdminAnalytics(ctx context.Context, days int) (*models.AnalyticsReport, error)
	AdminBlockedIPs(ctx context.Context) ([]models.BlockedIP, error)
	AdminUnblockIP(ctx context.Context, ip string) error
}

// AdminService wraps the management endpoints. User updates invalidate the
// users list only; unblocking invalidates the blocked-addresses list only.
type AdminService interface {
	Users(ctx context.Context, page, perPage int) (*models.UserPage, error)
	UpdateUser(ctx context.Context, userID int64, upd api.AdminUserUpdate) (*models.User, error)
	Analytics(ctx context.Context, days int) (*models.AnalyticsReport, error)
	BlockedIPs(ctx context.Context) ([]models.BlockedIP, error)
	UnblockIP(ctx context.Context, ip string) error
}

type adminService struct {
	api   adminAPI
	cache *cache.Store
	log   logging.Logger
}

func NewAdminService(a adminAPI, c *cache.Store, log logging.Logger) AdminService {
	return &adminService{api: a, cache: c, log: log.With("component", "admin")}
}

func (s *adminService) Users(ctx context.Context, page, perPage int) (*models.UserPage, error) {
	if hit, ok := cache.Lookup[pagedEntry[*models.UserPage]](s.cache, cache.AdminUsers); ok &&
		hit.page == page && hit.perPage == perPage {
		return hit.data, nil
	}

	result, err := s.api.AdminUsers(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.AdminUsers, pagedEntry[*models.UserPage]{page: page, perPage: perPage, data: result})
	return result, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID int64, upd api.AdminUserUpdate) (*models.User, error) {
	user, err := s.api.AdminUpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.AdminUsers)
	return user, nil
}

func (s *adminService) Analytics(ctx context.Context, days int) (*models.AnalyticsReport, error) {
	if hit, ok := cache.Lookup[pagedEntry[*models.AnalyticsReport]](s.cache, cache.AdminAnalytics); ok &&
		hit.page == days {
		return hit.data, nil
	}

	report, err := s.api.AdminAnalytics(ctx, days)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.AdminAnalytics, pagedEntry[*models.AnalyticsReport]{page: days, data: report})
	return report, nil
}

func (s *adminService) BlockedIPs(ctx context.Context) ([]models.BlockedIP, error) {
	if hit, ok := cache.Lookup[[]models.BlockedIP](s.cache, cache.AdminBlockedIPs); ok {
		return hit, nil
	}

	list, err := s.api.AdminBlockedIPs(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Put(cache.AdminBlockedIPs, list)
	return list, nil
}

func (s *adminService) UnblockIP(ctx context.Context, ip string) error {
	if err := s.api.AdminUnblockIP(ctx, ip); err != nil {
		return err
	}
	s.cache.Invalidate(cache.AdminBlockedIPs)
	return nil
}
