package keystore

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebrowser/config"
	"github.com/pageza/recipebrowser/internal/database"
)

// Open builds the backend selected by cfg.KeyStoreBackend. rdb is only used
// by the redis backend. Values are sealed when KEY_ENCRYPTION_SECRET is set.
func Open(cfg *config.Config, rdb *redis.Client) (Backend, error) {
	var backend Backend

	switch cfg.KeyStoreBackend {
	case config.BackendMemory:
		backend = NewMemory()
	case config.BackendRedis:
		if rdb == nil {
			return nil, errors.New("redis key store requires a redis client")
		}
		backend = NewRedis(rdb)
	case config.BackendSQLite, config.BackendPostgres:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open key store database: %w", err)
		}
		backend = NewSQL(db)
	default:
		return nil, fmt.Errorf("unknown key store backend %q", cfg.KeyStoreBackend)
	}

	if cfg.KeyEncryptionSecret != "" {
		backend = NewSealed(backend, cfg.KeyEncryptionSecret)
	}
	return backend, nil
}
