package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/LocalBizGo/internal/config"
	"github.com/utafrali/LocalBizGo/internal/store"
	badgerstore "github.com/utafrali/LocalBizGo/internal/store/badger"
	"github.com/utafrali/LocalBizGo/internal/store/file"
	"github.com/utafrali/LocalBizGo/internal/store/memory"
	pgstore "github.com/utafrali/LocalBizGo/internal/store/postgres"
	redisstore "github.com/utafrali/LocalBizGo/internal/store/redis"
	"github.com/utafrali/LocalBizGo/migrations"
	"github.com/utafrali/LocalBizGo/pkg/database"
)

// OpenStore builds the record store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	var (
		backend store.Backend
		err     error
	)

	switch cfg.StoreDriver {
	case config.DriverFile:
		backend, err = file.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("using file store", slog.String("dir", cfg.DataDir))

	case config.DriverMemory:
		backend = memory.New()
		logger.Warn("using in-memory store, records are lost on exit")

	case config.DriverBadger:
		backend, err = badgerstore.Open(cfg.BadgerDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		logger.Info("using badger store", slog.String("dir", cfg.BadgerDir))

	case config.DriverRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		backend = redisstore.New(client, cfg.RedisKeyPrefix)
		logger.Info("using redis store", slog.String("addr", cfg.RedisConfig().Addr()))

	case config.DriverPostgres:
		pgCfg := cfg.PostgresConfig()
		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", pgCfg.Host),
			slog.Int("port", pgCfg.Port),
			slog.String("database", pgCfg.DBName),
		)
		database.RegisterPoolMetrics(pool, "localbiz")

		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if cfg.SlowQueryThresholdMs > 0 {
			database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
		}
		backend = pgstore.New(pool, pool.Close)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	return store.New(cfg.StoreDriver, backend, logger), nil
}
