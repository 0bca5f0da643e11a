// cmd/storefront/storage.go
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
)

// backend is the opened storage adapter plus what main needs to watch and
// release it
type backend struct {
	adapter storage.Adapter
	health  handlers.HealthCheck
	close   func() error
}

func noop() error { return nil }

// openStorage connects the backend selected by STORAGE_PROVIDER
func openStorage(cfg *config.Config, log *logrus.Logger) (*backend, error) {
	switch cfg.Storage.Provider {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, the cart will not survive a restart")
		return &backend{adapter: storage.NewMemory(), health: noop, close: noop}, nil

	case config.StorageRedis:
		client, err := redis.NewConnection(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return &backend{
			adapter: redis.NewStorage(client.GetClient(), cfg.Storage.TTL),
			health:  client.Health,
			close:   client.Close,
		}, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.NewMigration(db.GetDB(), log).RunAutoMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		return &backend{
			adapter: postgres.NewStorage(db.GetDB()),
			health:  db.Health,
			close:   db.Close,
		}, nil

	default:
		file, err := storage.NewFile(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		log.Infof("Cart persisted to %s", cfg.Storage.FilePath)
		return &backend{adapter: file, health: noop, close: noop}, nil
	}
}
