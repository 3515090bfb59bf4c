// Package storage wires the client's local SQLite database: it opens the
// file, applies embedded goose migrations, and hands out repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/newscheck/internal/client/migrations"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/records"
	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
)

type Repositories struct {
	Tokens  tokens.Repository
	Records records.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Tokens:  tokens.NewSQLiteRepository(db),
		Records: records.NewSQLiteRepository(db),
	}
	return repos, db, nil
}
