// Package mdb opens the MongoDB client used for level documents
package mdb

import (
	"context"
	"errors"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config configures the client
type Config struct {
	URI     string
	DB      string
	AppName string

	// Timeout is the client side operation timeout, 0 disables it
	Timeout     time.Duration
	LogCommands bool
	SlowMs      int
}

// Mongo pairs a connected client with the database the service reads
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

var connect = mongo.Connect

// ClientOptions maps cfg onto driver options
func ClientOptions(cfg Config, log logger.Logger) *options.ClientOptions {
	o := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		o.SetAppName(cfg.AppName)
	}
	if cfg.Timeout > 0 {
		o.SetTimeout(cfg.Timeout)
	}
	if cfg.LogCommands {
		o.SetMonitor(Monitor(log, cfg.SlowMs))
	}
	return o
}

// Open connects and pings the primary before returning
func Open(ctx context.Context, cfg Config, log logger.Logger) (*Mongo, error) {
	if cfg.DB == "" {
		return nil, errors.New("mongo: database name is required")
	}
	c, err := connect(ctx, ClientOptions(cfg, log))
	if err != nil {
		return nil, err
	}
	m := &Mongo{Client: c, DB: c.Database(cfg.DB)}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.Ping(pctx); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// Ping checks the primary
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo: nil client")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
