package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func text(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(body)) }
}

func TestAdaptChi_RootGroupRoute(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/root", text("root"))
	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		gr.Get("/g/ping", text("g"))
		gr.Group(func(ngr Router) { ngr.Get("/g/nested", text("nested")) })
	})
	r.Route("/api", func(sr Router) {
		sr.Use(header("X-Route"))
		if sr.Mux() == nil {
			t.Fatal("route Mux() returned nil")
		}
		sr.Route("/v1", func(nr Router) { nr.Get("/ok", text("v1ok")) })
		sr.Handle("/search/*", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			_, _ = w.Write([]byte(req.Method))
		}))
	})

	cases := []struct {
		method, path, body string
		headers            []string
	}{
		{stdhttp.MethodGet, "/root", "root", []string{"X-Root"}},
		{stdhttp.MethodGet, "/g/ping", "g", []string{"X-Root", "X-Group"}},
		{stdhttp.MethodGet, "/g/nested", "nested", []string{"X-Root", "X-Group"}},
		{stdhttp.MethodGet, "/api/v1/ok", "v1ok", []string{"X-Root", "X-Route"}},
		{stdhttp.MethodDelete, "/api/search/x", "DELETE", []string{"X-Route"}},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		if rr.Code != stdhttp.StatusOK || rr.Body.String() != c.body {
			t.Fatalf("%s %s => %d %q", c.method, c.path, rr.Code, rr.Body.String())
		}
		for _, h := range c.headers {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("%s %s missing %s", c.method, c.path, h)
			}
		}
	}

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodPost, "/root", nil))
	if rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("POST /root => %d, want 405 from chi", rr.Code)
	}
}
