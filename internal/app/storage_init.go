package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/memory"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/postgres"
	"github.com/vladislavdragonenkov/easyorder/internal/storage/sqlite"
)

// runtimeStorage хранит выбранное хранилище вместе с проверкой и закрытием.
type runtimeStorage struct {
	repos   domain.Repositories
	checker domain.StoreChecker
	close   func() error
}

func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeStorage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		db := memory.NewDatabase()
		logger.Info("используем in-memory хранилище")
		return &runtimeStorage{
			repos:   memory.NewRepositories(db),
			checker: db,
			close:   func() error { return nil },
		}, nil

	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
			logger.Info("миграции postgres применены")
		}
		logger.Info("используем postgres хранилище")
		return &runtimeStorage{
			repos:   store.Repositories(),
			checker: store,
			close:   store.Close,
		}, nil

	case StorageDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger.WithField("component", "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		logger.WithField("path", cfg.SQLitePath).Info("используем sqlite хранилище")
		return &runtimeStorage{
			repos:   store.Repositories(),
			checker: store,
			close:   store.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnsupportedDriver, cfg.StorageDriver)
}
