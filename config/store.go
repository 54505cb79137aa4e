package config

import (
	"context"
	"fmt"
	"time"

	"hotel-frontdesk/store"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
)

// OpenStore connects the backend named by STORE_DRIVER. The returned close
// func releases its connections.
func OpenStore(ctx context.Context, cfg *AppConfig, log *logrus.Logger) (*store.Store, func() error, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn("⚠️  STORE_DRIVER=memory, nothing will survive a restart")
		return store.New(store.NewMemoryKV()), func() error { return nil }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		kv := store.NewRedisKV(client, cfg.RedisPrefix)
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		log.Infof("✅ Redis store at %s", cfg.RedisAddr)
		return store.New(kv), kv.Close, nil

	default:
		db, err := ConnectDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		kv := store.NewGormKV(db)
		if err := kv.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("✅ Database connection established and migrations applied")
		return store.New(kv), sqlDB.Close, nil
	}
}
