// Package records keeps a local copy of verification records fetched from
// the server, so history stays viewable when the backend is unreachable.
package records

import (
	"context"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

type Repository interface {
	// Upsert stores or replaces records by server id.
	Upsert(ctx context.Context, items []models.VerificationRecord) error

	// List returns locally cached records, newest first.
	List(ctx context.Context, limit, offset int) ([]models.VerificationRecord, error)

	// Get returns one cached record or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.VerificationRecord, error)

	// Clear wipes the local cache (on logout).
	Clear(ctx context.Context) error
}
