package module

import (
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
)

// Backends accepted by SEARCH_BACKEND
const (
	BackendMongo  = "mongo"
	BackendPG     = "pg"
	BackendMemory = "memory"
)

// Options controls which store the search reads and how long it may take
type Options struct {
	Backend      string
	QueryTimeout time.Duration
	CacheTTL     time.Duration

	// Fixture is a JSON fixture loaded by the memory backend, empty for an empty catalogue
	Fixture string
}

// FromConfig reads SEARCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SEARCH_")
	return Options{
		Backend:      sc.MayEnum("BACKEND", BackendMongo, BackendMongo, BackendPG, BackendMemory),
		QueryTimeout: sc.MayDuration("QUERY_TIMEOUT", 10*time.Second),
		CacheTTL:     sc.MayDuration("CACHE_TTL", 30*time.Second),
		Fixture:      sc.MayString("FIXTURE", ""),
	}
}
