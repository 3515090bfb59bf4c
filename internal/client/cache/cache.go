// Package cache holds query results between renders and defines the
// invalidation contract: every mutation invalidates exactly the keys that
// could now show stale data, never unrelated lists. Invalidated keys are
// simply dropped; the next read misses and re-fetches.
package cache

import (
	"fmt"
	"sync"
)

// Key names one cacheable query.
type Key string

const (
	History         Key = "news-history"
	MyFeedback      Key = "my-feedback"
	AdminUsers      Key = "admin-users"
	AdminAnalytics  Key = "admin-analytics"
	AdminBlockedIPs Key = "admin-blocked-ips"
)

// Record is the detail view of one verification record.
func Record(id int64) Key {
	return Key(fmt.Sprintf("news:%d", id))
}

// RecordFeedback is the feedback listing attached to one record.
func RecordFeedback(id int64) Key {
	return Key(fmt.Sprintf("news:%d:feedback", id))
}

type Store struct {
	mu      sync.RWMutex
	entries map[Key]any
}

func New() *Store {
	return &Store{entries: make(map[Key]any)}
}

func (s *Store) Get(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// Reset drops everything; used on logout when no cached view is valid for
// the next identity.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]any)
}

// Lookup fetches a key and type-asserts it in one step. A miss or a type
// mismatch both report !ok.
func Lookup[T any](s *Store, key Key) (T, bool) {
	v, ok := s.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
