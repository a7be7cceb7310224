// Package store opens and guards the optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store/mdb"

	"github.com/redis/go-redis/v9"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner

	// Mongo holds the level document database, nil when disabled
	Mongo *mdb.Mongo

	// KV is the redis cache client, nil when disabled
	KV *redis.Client
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil; a failure closes what was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, fmt.Errorf("pg: %w", err)
		}
		s.PG = p
	}
	if cfg.Mongo.Enabled {
		m, err := openMongo(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("mongo: %w", err)
		}
		s.Mongo = m
	}
	if cfg.Redis.Enabled {
		c, err := openKV(ctx, cfg)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("redis: %w", err)
		}
		s.KV = c
	}
	return s, nil
}

// Guard pings every configured backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pg: %w", err))
		}
	}
	if s.Mongo != nil {
		if err := s.Mongo.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo: %w", err))
		}
	}
	if s.KV != nil {
		if err := s.KV.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends; nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.KV != nil {
		if err := s.KV.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
