// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/core/version"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	ptime "github.com/sspenst/thinky.gg-sub004/internal/platform/time"

	"golang.org/x/sync/errgroup"
)

// Probe is one named readiness check
type Probe struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	Probes       []Probe
	ProbeTimeout time.Duration
	Clock        ptime.Clock
}

type handlers struct {
	deps Deps
	now  ptime.Clock
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ProbeTimeout <= 0 {
		d.ProbeTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: d.Clock.Or()}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"thinky-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck describes a single store check
type ReadyCheck struct {
	Name   string `json:"name"   example:"mongo"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"server selection error: context deadline exceeded"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"thinky-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with store checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ProbeTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.deps.Probes))
	var g errgroup.Group
	for i, p := range h.deps.Probes {
		g.Go(func() error {
			checks[i] = ReadyCheck{Name: p.Name, Status: "ok"}
			if err := p.Ping(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    h.now().UTC().Format(time.RFC3339),
	}, nil
}

// overall is fail when every store is down, degraded when some are
func overall(checks []ReadyCheck) string {
	failed := 0
	for _, c := range checks {
		if c.Status == "fail" {
			failed++
		}
	}
	switch {
	case failed == 0:
		return "ok"
	case failed == len(checks):
		return "fail"
	default:
		return "degraded"
	}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
