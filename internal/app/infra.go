package app

import (
	"context"

	"github.com/Scetch/potw/internal/config"
	"github.com/Scetch/potw/internal/db"
	"github.com/Scetch/potw/internal/logger"
	"github.com/Scetch/potw/internal/redis"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"path": cfg.DatabasePath,
	})

	// Redis only backs the leaderboard cache; without an address the
	// site runs uncached.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			database.Close()
			return nil, err
		}
		logger.Info("redis ready", nil)
	}

	return &Infra{
		DB:    database,
		Redis: redisClient,
	}, nil
}
