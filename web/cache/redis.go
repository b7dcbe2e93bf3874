// Package cache connects to redis for the server-side session store. With no
// address configured an embedded miniredis instance is started instead.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	isEmbedded bool
)

// InitRedis connects to cfg.Addr, or starts an embedded server when it is empty.
func InitRedis(ctx context.Context, cfg config.RedisSettings) error {
	if client != nil {
		return fmt.Errorf("redis already initialized")
	}

	if cfg.Addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		isEmbedded = true
		logger.Info("Embedded redis started on", mr.Addr())
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	client = c
	isEmbedded = false
	logger.Info("Connected to redis at", cfg.Addr)
	return nil
}

func GetClient() *redis.Client {
	return client
}

func IsEmbedded() bool {
	return isEmbedded
}

// Close disconnects and stops the embedded server if one was started.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	isEmbedded = false
	return err
}
