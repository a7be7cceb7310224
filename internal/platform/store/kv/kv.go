// Package kv opens the Redis client used as a read-through cache
package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the client
type Config struct {
	Addr     string
	Password string
	DB       int

	DialTimeout time.Duration
}

// Options maps cfg onto go-redis options
func Options(cfg Config) *redis.Options {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = 2 * time.Second
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// Open builds a client and pings it once
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	c := redis.NewClient(Options(cfg))
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
