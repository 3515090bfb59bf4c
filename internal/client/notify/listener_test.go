package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/newscheck/internal/client/cache"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/newscheck/internal/logging"
)

type memStore struct {
	pair tokens.Pair
}

func (m *memStore) Load(ctx context.Context) (tokens.Pair, error) { return m.pair, nil }
func (m *memStore) Save(ctx context.Context, p tokens.Pair) error { m.pair = p; return nil }
func (m *memStore) SaveAccess(ctx context.Context, access string) error {
	m.pair.Access = access
	return nil
}
func (m *memStore) Clear(ctx context.Context) error { m.pair = tokens.Pair{}; return nil }

type recordingInvalidator struct {
	mu   sync.Mutex
	keys []cache.Key
	seen chan struct{}
}

func (r *recordingInvalidator) Invalidate(keys ...cache.Key) {
	r.mu.Lock()
	r.keys = append(r.keys, keys...)
	r.mu.Unlock()
	select {
	case r.seen <- struct{}{}:
	default:
	}
}

func (r *recordingInvalidator) snapshot() []cache.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cache.Key(nil), r.keys...)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestKeysFor(t *testing.T) {
	t.Parallel()

	want := []cache.Key{cache.Record(7), cache.RecordFeedback(7), cache.MyFeedback}
	for _, typ := range []string{TypeNewFeedback, TypeFeedbackUpdated, TypeFeedbackDeleted} {
		require.Equal(t, want, keysFor(Message{Type: typ, NewsID: 7}))
	}

	require.Nil(t, keysFor(Message{Type: "SOMETHING_ELSE", NewsID: 7}))
}

func TestListener_InvalidatesOnPushedEvent(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(Message{Type: TypeNewFeedback, NewsID: 7}))
		// garbage and unknown types must be skipped without dropping the loop
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{broken")))
		require.NoError(t, conn.WriteJSON(Message{Type: "WHATEVER", NewsID: 1}))
		require.NoError(t, conn.WriteJSON(Message{Type: TypeFeedbackDeleted, NewsID: 9}))

		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	inv := &recordingInvalidator{seen: make(chan struct{}, 16)}
	store := &memStore{pair: tokens.Pair{Access: "A1"}}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	l := NewListener(wsURL, store, inv, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	deadline := time.After(2 * time.Second)
	for len(inv.snapshot()) < 6 {
		select {
		case <-inv.seen:
		case <-deadline:
			t.Fatalf("timed out, got keys: %v", inv.snapshot())
		}
	}
	cancel()

	require.Equal(t, "A1", gotToken, "dial must carry the access token")

	got := inv.snapshot()
	require.Contains(t, got, cache.RecordFeedback(7))
	require.Contains(t, got, cache.Record(7))
	require.Contains(t, got, cache.RecordFeedback(9))
	require.NotContains(t, got, cache.AdminUsers)
}

func TestListener_RunStopsOnCancel(t *testing.T) {
	// endpoint that never answers; Run must exit promptly once cancelled
	l := NewListener("ws://127.0.0.1:1/ws", &memStore{}, &recordingInvalidator{seen: make(chan struct{}, 1)}, testLogger())
	l.backoff = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
