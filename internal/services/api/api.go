// Package api provides the HTTP API for the application
package api

import (
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/module"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/swaggerkit"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/net/middleware"

	metamod "github.com/sspenst/thinky.gg-sub004/internal/services/api/meta/module"
	searchmod "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/module"
)

// Options are the API options
type Options struct {
	Deps           modkit.Deps
	Session        middleware.SessionPort
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	RequestTimeout time.Duration
	SlowLog        time.Duration
	Search         searchmod.Options
}

// FromConfig reads the CORE_API_* switches and the search options
func FromConfig(cfg config.Conf, deps modkit.Deps, session middleware.SessionPort) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		Deps:           deps,
		Session:        session,
		EnableSwagger:  c.MayBool("SWAGGER", false),
		EnableProfiler: c.MayBool("PROFILER", false),
		CORSOrigins:    c.MayCSV("CORS_ORIGINS", nil),
		RequestTimeout: c.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowLog:        c.MayDuration("SLOW_LOG", time.Second),
		Search:         searchmod.FromConfig(cfg),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	mods := []modkit.Module{
		metamod.New(opt.Deps),
		searchmod.New(opt.Deps, opt.Search),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.RequestTimeout,
		SlowLog:     opt.SlowLog,
		Session:     opt.Session,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.RegisterModule(m)
			m.MountRoutes(api)
		}
	})
}
