package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies all pending migrations for the dialect and returns the
// resulting schema version.
func Migrate(ctx context.Context, sqlDB *sql.DB, dialect Dialect, logger *slog.Logger) (int64, error) {
	var (
		dir          string
		gooseDialect goose.Dialect
	)
	switch dialect {
	case DialectPostgres:
		dir, gooseDialect = "migrations/postgres", goose.DialectPostgres
	case DialectSQLite:
		dir, gooseDialect = "migrations/sqlite", goose.DialectSQLite3
	default:
		return 0, fmt.Errorf("no migrations for dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open migrations for %s: %w", dialect, err)
	}

	provider, err := goose.NewProvider(gooseDialect, sqlDB, fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		if logger != nil {
			logger.Info("applied migration", "source", r.Source.Path, "duration", r.Duration)
		}
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
