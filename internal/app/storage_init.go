package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

// runtimeDependencies собирает репозитории выбранного драйвера хранилища.
// store не nil только для postgres: по нему выполняются ping и Close.
type runtimeDependencies struct {
	repo            domain.OrderRepository
	outboxRepo      domain.OutboxRepository
	timelineRepo    domain.TimelineRepository
	idempotencyRepo domain.IdempotencyRepository
	store           *postgres.Store
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}

// initRuntimeDependencies инициализирует хранилище согласно конфигурации.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		return &runtimeDependencies{
			repo:            memory.NewOrderRepository(),
			outboxRepo:      memory.NewOutboxRepository(),
			timelineRepo:    memory.NewTimelineRepository(),
			idempotencyRepo: memory.NewIdempotencyRepository(),
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage driver requires a DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("postgres schema is up to date")
		}
		return &runtimeDependencies{
			repo:            postgres.NewOrderRepository(store),
			outboxRepo:      postgres.NewOutboxRepository(store),
			timelineRepo:    postgres.NewTimelineRepository(store),
			idempotencyRepo: postgres.NewIdempotencyRepository(store),
			store:           store,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
