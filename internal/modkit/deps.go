// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Deps holds core dependencies passed to modules
// every store is optional and nil when its backend is not configured
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	Mongo *mongo.Database
	KV    *redis.Client
}

// Check is a named readiness probe
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Checks returns one probe per configured store, in a stable order
func (d Deps) Checks() []Check {
	var out []Check
	if p, ok := d.PG.(store.Pinger); ok {
		out = append(out, Check{Name: "pg", Ping: p.Ping})
	}
	if d.Mongo != nil {
		db := d.Mongo
		out = append(out, Check{Name: "mongo", Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		}})
	}
	if d.KV != nil {
		kv := d.KV
		out = append(out, Check{Name: "redis", Ping: func(ctx context.Context) error {
			return kv.Ping(ctx).Err()
		}})
	}
	return out
}

// FromStore copies the opened backends of st into Deps
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st == nil {
		return d
	}
	d.PG = st.PG
	d.KV = st.KV
	if st.Mongo != nil {
		d.Mongo = st.Mongo.DB
	}
	return d
}
