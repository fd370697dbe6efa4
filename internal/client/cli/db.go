package cli

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/shelfkeeper/shelfkeeper/internal/client/migrations"
	"github.com/shelfkeeper/shelfkeeper/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// initDatabase opens the local SQLite state file and applies migrations.
func initDatabase(ctx context.Context, dsn string) (metadata.Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}

	return metadata.NewSQLiteRepository(db), nil
}
