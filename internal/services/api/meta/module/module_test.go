package module

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	modkit "github.com/sspenst/thinky.gg-sub004/internal/modkit"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
	kit "github.com/sspenst/thinky.gg-sub004/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestModule_MountsUnderMeta(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 1, 13, 0, 0, 0, time.UTC)
	m := NewWithClock(modkit.Deps{}, kit.FixedClock(at))
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name=%q ports=%v", m.Name(), m.Ports())
	}
	if p := m.(*Module).Prefix(); p != "/meta" {
		t.Fatalf("prefix = %q", p)
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	for _, path := range []string{"/meta/health", "/meta/ready", "/meta/version", "/meta/service"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/levels", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected route status = %d", rec.Code)
	}
}
