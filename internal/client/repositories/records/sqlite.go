package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
	"github.com/dmitrijs2005/newscheck/internal/common"
	"github.com/dmitrijs2005/newscheck/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, items []models.VerificationRecord) error {
	if len(items) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, item := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO verification_records (id, content, is_url, result, confidence, created_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					content = excluded.content,
					is_url = excluded.is_url,
					result = excluded.result,
					confidence = excluded.confidence,
					created_at = excluded.created_at
			`, item.ID, item.Content, item.IsURL, item.Result, item.Confidence, item.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert record %d: %w", item.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) List(ctx context.Context, limit, offset int) ([]models.VerificationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, is_url, result, confidence, created_at
		FROM verification_records
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var result []models.VerificationRecord
	for rows.Next() {
		var rec models.VerificationRecord
		if err := rows.Scan(&rec.ID, &rec.Content, &rec.IsURL, &rec.Result, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.VerificationRecord, error) {
	var rec models.VerificationRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, content, is_url, result, confidence, created_at
		FROM verification_records WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Content, &rec.IsURL, &rec.Result, &rec.Confidence, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return &rec, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verification_records`)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
