// Package tokens persists the session's credential pair in local storage.
// The store is the single source of truth for the request interceptor and
// the session manager; both tokens are always written and cleared together.
package tokens

import "context"

// Pair holds the persisted credentials. A zero Access means no session.
type Pair struct {
	Access  string
	Refresh string
}

type Repository interface {
	// Load returns the stored pair. A missing pair is not an error; it is
	// reported as zero values.
	Load(ctx context.Context) (Pair, error)

	// Save replaces the stored pair atomically.
	Save(ctx context.Context, p Pair) error

	// SaveAccess replaces only the access token, keeping the refresh token.
	// Used after a successful refresh call.
	SaveAccess(ctx context.Context, access string) error

	// Clear removes both tokens.
	Clear(ctx context.Context) error
}
