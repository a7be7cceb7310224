package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/store/kv"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store/mdb"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

// openPG opens the pool, waits for it to answer, then wraps it with the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:                cfg.PG.URL,
		AppName:            cfg.AppName,
		MaxConns:           cfg.PG.MaxConns,
		SlowMs:             cfg.PG.SlowQueryMs,
		StatementTimeoutMs: int(cfg.PG.StatementTimeout / time.Millisecond),
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectAttempts
	if attempts <= 0 {
		attempts = 20
	}
	const (
		pingTimeout    = 3 * time.Second
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}

func openMongo(ctx context.Context, cfg Config, s *Store) (*mdb.Mongo, error) {
	return mdb.Open(ctx, mdb.Config{
		URI:         cfg.Mongo.URI,
		DB:          cfg.Mongo.DB,
		AppName:     cfg.AppName,
		Timeout:     cfg.Mongo.Timeout,
		LogCommands: cfg.Mongo.LogCommands,
		SlowMs:      cfg.Mongo.SlowQueryMs,
	}, s.Log)
}

func openKV(ctx context.Context, cfg Config) (*redis.Client, error) {
	return kv.Open(ctx, kv.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
