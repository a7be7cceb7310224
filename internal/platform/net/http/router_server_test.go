package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultsAndMux(t *testing.T) {
	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("THINKY_TEST_UNSET_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatal("expected option hook to run")
	}
	if srv.Addr() != ":4000" {
		t.Fatalf("Addr() = %q, want :4000", srv.Addr())
	}

	r := srv.Router()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewServer_AddrFromEnv(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "127.0.0.1:14000")
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))
	if srv.Addr() != "127.0.0.1:14000" {
		t.Fatalf("Addr() = %q", srv.Addr())
	}
}
