package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type stub struct {
	b     Built
	ports any
}

func (s *stub) MountRoutes(r phttp.Router) {
	s.b.Mount(r, func(sub httpkit.Router) {
		sub.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("levels"))
		})
	})
}
func (s *stub) Ports() any   { return s.ports }
func (s *stub) Name() string { return s.b.Name }

var _ Module = (*stub)(nil)

func TestBuilder_BuildsModule(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, opts ...Option) Module {
		built := Build(append([]Option{WithName("search"), WithPrefix("/search")}, opts...)...)
		return &stub{b: built, ports: built.Ports}
	}

	m := b(Deps{}, WithPorts("ok"))
	if m.Name() != "search" {
		t.Fatalf("Name = %q", m.Name())
	}
	if m.Ports() != "ok" {
		t.Fatalf("Ports = %v", m.Ports())
	}
}

func TestBuilt_MountAppliesPrefixMiddlewareAndHooks(t *testing.T) {
	t.Parallel()

	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "search")
			next.ServeHTTP(w, r)
		})
	}
	extra := func(r phttp.Router) {
		r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	}

	m := &stub{b: Build(WithName("search"), WithPrefix("/search"), WithMiddlewares(tagged), WithRegister(extra))}
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/search", http.StatusOK, "levels"},
		{"/search/extra", http.StatusAccepted, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.path, rec.Code, tc.status)
		}
		if rec.Body.String() != tc.body {
			t.Fatalf("%s: body = %q, want %q", tc.path, rec.Body.String(), tc.body)
		}
		if rec.Header().Get("X-Module") != "search" {
			t.Fatalf("%s: module middleware not applied", tc.path)
		}
	}
}
