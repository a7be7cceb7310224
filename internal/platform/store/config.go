package store

import (
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG    PGConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled          bool
	URL              string
	MaxConns         int32
	LogSQL           bool
	SlowQueryMs      int
	StatementTimeout time.Duration

	// ConnectAttempts bounds the boot ping loop, default 20
	ConnectAttempts int
}

// MongoConfig configures the level document store
type MongoConfig struct {
	Enabled     bool
	URI         string
	DB          string
	Timeout     time.Duration
	LogCommands bool
	SlowQueryMs int
}

// RedisConfig configures the cache
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_MONGO_* and SERVICE_REDIS_* from root
// a backend is enabled when its address is set
func ConfigFromEnv(root config.Conf, appName string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	mg := root.Prefix("SERVICE_MONGO_")
	rd := root.Prefix("SERVICE_REDIS_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			URL:              pg.MayString("DBURL", ""),
			MaxConns:         int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:           pg.MayBool("LOG_SQL", false),
			SlowQueryMs:      pg.MayInt("SLOW_MS", 500),
			StatementTimeout: pg.MayDuration("STATEMENT_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:         mg.MayString("URI", ""),
			DB:          mg.MayString("DB", "thinky"),
			Timeout:     mg.MayDuration("TIMEOUT", 10*time.Second),
			LogCommands: mg.MayBool("LOG_COMMANDS", false),
			SlowQueryMs: mg.MayInt("SLOW_MS", 500),
		},
		Redis: RedisConfig{
			Addr:     rd.MayString("ADDR", ""),
			Password: rd.MayString("PASSWORD", ""),
			DB:       rd.MayInt("DB", 0),
		},
	}
	cfg.PG.Enabled = cfg.PG.URL != ""
	cfg.Mongo.Enabled = cfg.Mongo.URI != ""
	cfg.Redis.Enabled = cfg.Redis.Addr != ""
	return cfg
}
