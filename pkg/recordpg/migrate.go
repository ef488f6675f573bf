package recordpg

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates or upgrades the locale_records table.
// An empty table name selects DefaultMigrationsTable.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrationsTable string, log *slog.Logger) error {
	if migrationsTable == "" {
		migrationsTable = DefaultMigrationsTable
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	dir, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	// Shares the pool's connections; closing it would close the pool.
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(dir)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationsTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf logs only; goose returns the error to Migrate afterwards.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
