package history

import (
	"fmt"

	"github.com/polyglot/api/internal/config"
	"github.com/polyglot/api/internal/database"
	"go.uber.org/zap"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Open builds the store selected by cfg.HistoryBackend. The postgres backend
// applies pending migrations before returning.
func Open(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.HistoryBackend {
	case "", BackendMemory:
		return NewMemoryStore(), nil

	case BackendSQLite:
		db, err := database.NewSQLite(cfg.HistorySQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite history: %w", err)
		}
		logger.Info("sqlite history opened", zap.String("path", cfg.HistorySQLitePath))
		return NewSQLiteStore(db), nil

	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres history requires DATABASE_URL")
		}
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("postgres history connected")
		return NewPostgresStore(db), nil

	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis history requires REDIS_URL")
		}
		rdb, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("redis history connected")
		return NewRedisStore(rdb), nil
	}

	return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
}
