package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	adminports "github.com/illustspace/gsr/internal/admin/ports"
	adminstore "github.com/illustspace/gsr/internal/admin/store"
	httpapi "github.com/illustspace/gsr/internal/http"
	"github.com/illustspace/gsr/internal/platform/config"
	platformredis "github.com/illustspace/gsr/internal/platform/redis"
	"github.com/illustspace/gsr/internal/platform/storage"
	ratemw "github.com/illustspace/gsr/internal/ratelimit/middleware"
	"github.com/illustspace/gsr/internal/ratelimit/store/bucket"
	"github.com/illustspace/gsr/internal/registry/ports"
	registrystore "github.com/illustspace/gsr/internal/registry/store"
	"github.com/illustspace/gsr/pkg/platform/audit"
	auditmemory "github.com/illustspace/gsr/pkg/platform/audit/store/memory"
	auditpostgres "github.com/illustspace/gsr/pkg/platform/audit/store/postgres"
)

// registryStore is what every registry backend provides.
type registryStore interface {
	ports.Reader
	ports.StoreTx
}

// backends bundles the stores selected by configuration.
type backends struct {
	registry registryStore
	admin    adminports.Store
	audit    audit.Store
	limiter  ratemw.Limiter
	health   map[string]httpapi.HealthCheck
	close    func() error
}

func openBackends(ctx context.Context, cfg config.Config, logger *slog.Logger) (*backends, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.BackendRedis:
		return openRedis(ctx, cfg)
	default:
		reg := registrystore.NewInMemory()
		reg.SetTxTimeout(cfg.Store.TxTimeout)
		return &backends{
			registry: reg,
			admin:    adminstore.NewInMemory(),
			audit:    auditmemory.NewInMemoryStore(),
			limiter:  bucket.NewInMemoryBucketStore(),
			close:    func() error { return nil },
		}, nil
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*backends, error) {
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if cfg.Postgres.MigrateOnStart {
		applied, err := storage.ApplyMigrations(ctx, db, storage.Migrations())
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.InfoContext(ctx, "applied migrations", "migrations", applied)
		}
	}

	reg := registrystore.NewPostgres(db)
	reg.SetTxTimeout(cfg.Store.TxTimeout)
	return &backends{
		registry: reg,
		admin:    adminstore.NewPostgres(db),
		audit:    auditpostgres.New(db),
		limiter:  bucket.NewInMemoryBucketStore(),
		health:   map[string]httpapi.HealthCheck{"postgres": db.PingContext},
		close:    db.Close,
	}, nil
}

// openRedis keeps audit events in memory. Redis holds registry and admin
// state and the shared mint budget.
func openRedis(ctx context.Context, cfg config.Config) (*backends, error) {
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	reg := registrystore.NewRedis(client.Client, cfg.Redis.KeyPrefix)
	reg.SetTxTimeout(cfg.Store.TxTimeout)
	return &backends{
		registry: reg,
		admin:    adminstore.NewRedis(client.Client, cfg.Redis.KeyPrefix),
		audit:    auditmemory.NewInMemoryStore(),
		limiter:  bucket.NewRedisBucketStore(client.Client),
		health:   map[string]httpapi.HealthCheck{"redis": client.Health},
		close:    client.Close,
	}, nil
}
