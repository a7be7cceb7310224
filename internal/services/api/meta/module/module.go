// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "github.com/sspenst/thinky.gg-sub004/internal/modkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/swaggerkit"
	str "github.com/sspenst/thinky.gg-sub004/internal/platform/strings"
	ptime "github.com/sspenst/thinky.gg-sub004/internal/platform/time"

	"github.com/sspenst/thinky.gg-sub004/internal/core/version"
	metahttp "github.com/sspenst/thinky.gg-sub004/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module whose readiness probe covers every store in deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithClock(deps, nil, opts...)
}

// NewWithClock is New with an injectable clock
func NewWithClock(deps modkit.Deps, clock ptime.Clock, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var probes []metahttp.Probe
	for _, c := range deps.Checks() {
		probes = append(probes, metahttp.Probe{Name: c.Name, Ping: c.Ping})
	}

	info := version.Info()
	swaggerkit.Register(func(spec map[string]any) {
		if doc, ok := spec["info"].(map[string]any); ok {
			doc["x-build"] = map[string]any{"version": info.Version, "commit": info.Commit}
		}
	})

	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName:  info.Service,
			StartedAt:    clock.Or()(),
			Probes:       probes,
			ProbeTimeout: deps.Cfg.Prefix("META_").MayDuration("PROBE_TIMEOUT", 2*time.Second),
			Clock:        clock,
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.built.Ports }
