// Package session owns the authentication state of the client: the current
// user, the persisted token pair, and the login/register/logout/profile
// operations with their state transitions.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/newscheck/internal/client/api"
	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

// State enumerates the session lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// API is the subset of the gateway client the session manager needs.
type API interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Manager holds session state behind a mutex. The persisted token store is
// the source of truth: tokens are written there before the in-memory state
// flips to authenticated, so no observer ever sees a user without a token.
type Manager struct {
	mu     sync.Mutex
	api    API
	tokens tokens.Repository
	log    logging.Logger

	state     State
	user      *models.User
	lastError string

	// now is a seam for expiry tests.
	now func() time.Time
}

func NewManager(a API, store tokens.Repository, log logging.Logger) *Manager {
	return &Manager{
		api:    a,
		tokens: store,
		log:    log.With("component", "session"),
		state:  StateUninitialized,
		now:    time.Now,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns a copy of the current user record, or nil when anonymous.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.IsAdmin
}

// LastError returns the message recorded by the most recent failed
// operation. It is cleared by the next operation attempt.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// Restore rebuilds the session from the persisted token at startup. An
// expired token is discarded locally without a network call; a rejected
// "who am I" probe discards the token too. Restore itself never fails from
// the caller's perspective, the outcome is the resulting state.
func (m *Manager) Restore(ctx context.Context) State {
	m.setState(StateRestoring, nil, "")

	pair, err := m.tokens.Load(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to load stored tokens", "error", err)
		m.setState(StateAnonymous, nil, "")
		return StateAnonymous
	}
	if pair.Access == "" {
		m.setState(StateAnonymous, nil, "")
		return StateAnonymous
	}

	if tokenExpired(pair.Access, m.now()) {
		m.log.Debug(ctx, "stored access token expired, discarding")
		m.discardTokens(ctx)
		m.setState(StateAnonymous, nil, "")
		return StateAnonymous
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn(ctx, "session restore rejected", "error", err)
		m.discardTokens(ctx)
		m.setState(StateAnonymous, nil, "")
		return StateAnonymous
	}

	m.setState(StateAuthenticated, user, "")
	return StateAuthenticated
}

// Login authenticates and persists the returned token pair before the
// in-memory state flips, keeping the two stores consistent.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	m.clearError()

	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.recordFailure(err)
		return nil, err
	}

	return m.adopt(ctx, resp)
}

// Register creates the account and consumes the token pair returned by the
// registration call directly; there is no second login round trip.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	m.clearError()

	resp, err := m.api.Register(ctx, username, email, password)
	if err != nil {
		m.recordFailure(err)
		return nil, err
	}

	return m.adopt(ctx, resp)
}

// Logout always leaves the session anonymous with cleared tokens; the remote
// invalidation call is best-effort so a network failure can never leave the
// client stuck looking authenticated.
func (m *Manager) Logout(ctx context.Context) {
	pair, err := m.tokens.Load(ctx)
	if err == nil && (pair.Access != "" || pair.Refresh != "") {
		if err := m.api.Logout(ctx, pair.Refresh); err != nil {
			m.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
		}
	}

	m.discardTokens(ctx)
	m.setState(StateAnonymous, nil, "")
}

// Expire drops the in-memory session after the gateway reports the stored
// credentials can no longer be refreshed. The gateway has already cleared
// the persisted pair at that point, so this is a state flip only.
func (m *Manager) Expire() {
	m.setState(StateAnonymous, nil, "session expired, please log in again")
}

// UpdateProfile replaces the user record in place. The token pair is never
// touched; the server does not rotate credentials on profile changes.
func (m *Manager) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.User, error) {
	m.clearError()

	user, err := m.api.UpdateProfile(ctx, upd)
	if err != nil {
		// a rejected profile change does not end the session
		m.recordError(err)
		return nil, err
	}

	m.mu.Lock()
	if m.state == StateAuthenticated {
		u := *user
		m.user = &u
	}
	m.mu.Unlock()

	return user, nil
}

func (m *Manager) adopt(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	err := m.tokens.Save(ctx, tokens.Pair{Access: resp.AccessToken, Refresh: resp.RefreshToken})
	if err != nil {
		m.recordFailure(err)
		return nil, err
	}

	user := resp.User
	m.setState(StateAuthenticated, &user, "")
	return &user, nil
}

func (m *Manager) setState(s State, user *models.User, lastError string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.user = user
	m.lastError = lastError
}

func (m *Manager) clearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = ""
}

func (m *Manager) recordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = errorMessage(err)
}

func (m *Manager) recordFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.user = nil
	m.lastError = errorMessage(err)
}

func (m *Manager) discardTokens(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored tokens", "error", err)
	}
}

func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
