package postgres

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"taxi-dispatch/pkg/logger"
)

// Migrate накатывает миграции из fsys через пул приложения.
func Migrate(ctx context.Context, log logger.Logger, pool *pgxpool.Pool, fsys fs.FS) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("close migrations connection", logger.NewField("error", err))
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.Info("migration applied",
			logger.NewField("version", res.Source.Version),
			logger.NewField("path", res.Source.Path),
			logger.NewField("duration", res.Duration),
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("migrations version: %w", err)
	}
	log.Info("database schema is up to date", logger.NewField("version", version))

	return nil
}
