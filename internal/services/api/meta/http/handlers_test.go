package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/core/version"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
	kit "github.com/sspenst/thinky.gg-sub004/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type envelope[T any] struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Data       T      `json:"data"`
}

var started = time.Date(2026, 10, 1, 13, 0, 0, 0, time.UTC)

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func serve(t *testing.T, d Deps, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	httpkit.MountUnder(phttp.AdaptChi(mux), "/meta", nil, func(r httpkit.Router) { Register(r, d) })
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("%s status = %d body=%s", path, rec.Code, rec.Body.String())
	}
	return rec
}

func TestHealthAndService(t *testing.T) {
	t.Parallel()

	d := Deps{ServiceName: "thinky-api", StartedAt: started, Clock: kit.FixedClock(started.Add(5 * time.Minute))}

	h := kit.DecodeJSON[envelope[HealthResponse]](t, serve(t, d, "/meta/health").Body)
	if !h.Data.OK || h.Data.Service != "thinky-api" || h.Data.Now != "2026-10-01T13:05:00Z" {
		t.Fatalf("health = %+v", h.Data)
	}

	s := kit.DecodeJSON[envelope[ServiceResponse]](t, serve(t, d, "/meta/service").Body)
	if s.Data.Uptime != 300 || s.Data.Started != "2026-10-01T13:00:00Z" {
		t.Fatalf("service = %+v", s.Data)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	v := kit.DecodeJSON[envelope[version.BuildInfo]](t, serve(t, Deps{}, "/meta/version").Body)
	if v.Data != version.Info() {
		t.Fatalf("version = %+v", v.Data)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		probes []Probe
		want   string
	}{
		{"no stores", nil, "ok"},
		{"all up", []Probe{{"mongo", up}, {"redis", up}}, "ok"},
		{"cache down", []Probe{{"mongo", up}, {"redis", down}}, "degraded"},
		{"all down", []Probe{{"pg", down}}, "fail"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := kit.DecodeJSON[envelope[ReadyResponse]](t, serve(t, Deps{Probes: c.probes}, "/meta/ready").Body)
			if got.Data.Status != c.want || len(got.Data.Checks) != len(c.probes) {
				t.Fatalf("ready = %+v", got.Data)
			}
			for i, chk := range got.Data.Checks {
				if chk.Name != c.probes[i].Name {
					t.Fatalf("check %d name = %q", i, chk.Name)
				}
				if (chk.Status == "fail") != (chk.Error != "") {
					t.Fatalf("check %+v", chk)
				}
			}
		})
	}
}

func TestReady_ProbeTimeout(t *testing.T) {
	t.Parallel()

	slow := Probe{Name: "mongo", Ping: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	got := kit.DecodeJSON[envelope[ReadyResponse]](t, serve(t, Deps{Probes: []Probe{slow}, ProbeTimeout: 10 * time.Millisecond}, "/meta/ready").Body)
	if got.Data.Status != "fail" {
		t.Fatalf("ready = %+v", got.Data)
	}
}
