// Package notify subscribes to the backend's WebSocket change feed and turns
// pushed events into cache invalidations, so list views re-fetch without
// polling.
package notify

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

const (
	TypeNewFeedback     = "NEW_FEEDBACK"
	TypeFeedbackUpdated = "FEEDBACK_UPDATED"
	TypeFeedbackDeleted = "FEEDBACK_DELETED"
)

// Message is one pushed change notification.
type Message struct {
	Type   string `json:"type"`
	NewsID int64  `json:"news_id"`
}

// Invalidator is the slice of the cache the listener needs.
type Invalidator interface {
	Invalidate(keys ...cache.Key)
}

type Listener struct {
	endpoint string
	tokens   tokens.Repository
	cache    Invalidator
	log      logging.Logger
	dialer   *websocket.Dialer
	backoff  time.Duration
}

func NewListener(endpoint string, store tokens.Repository, inv Invalidator, log logging.Logger) *Listener {
	return &Listener{
		endpoint: endpoint,
		tokens:   store,
		cache:    inv,
		log:      log.With("component", "notify"),
		dialer:   websocket.DefaultDialer,
		backoff:  3 * time.Second,
	}
}

// Run keeps one connection alive until the context is cancelled,
// reconnecting with a fixed backoff. The feed is an optional enhancement:
// failures degrade to plain on-demand re-fetching, so they are logged and
// retried, never escalated.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.runOnce(ctx); err != nil {
			l.log.Debug(ctx, "notification channel closed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) runOnce(ctx context.Context) error {
	u, err := l.authenticatedURL(ctx)
	if err != nil {
		return err
	}

	conn, _, err := l.dialer.DialContext(ctx, u, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// unblock ReadMessage when the context is cancelled
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			l.log.Warn(ctx, "failed to parse notification", "error", err)
			continue
		}

		keys := keysFor(msg)
		if len(keys) == 0 {
			l.log.Warn(ctx, "unknown notification type", "type", msg.Type)
			continue
		}
		l.cache.Invalidate(keys...)
	}
}

func (l *Listener) authenticatedURL(ctx context.Context) (string, error) {
	pair, err := l.tokens.Load(ctx)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", pair.Access)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// keysFor maps one event to its invalidation blast radius: the affected
// record's views plus the submitter-facing list, nothing else.
func keysFor(msg Message) []cache.Key {
	switch msg.Type {
	case TypeNewFeedback, TypeFeedbackUpdated, TypeFeedbackDeleted:
		return []cache.Key{
			cache.Record(msg.NewsID),
			cache.RecordFeedback(msg.NewsID),
			cache.MyFeedback,
		}
	default:
		return nil
	}
}
