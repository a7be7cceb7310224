package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"
	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
	kit "github.com/sspenst/thinky.gg-sub004/internal/platform/testkit"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func TestRespondOKAndError(t *testing.T) {
	t.Parallel()
	req := reqWithReqID(http.MethodGet, "/meta/health", "rid-1")

	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, req, map[string]string{"status": "ok"})
	env := kit.DecodeJSON[phttp.Envelope](t, rec.Body)
	if rec.Code != http.StatusOK || env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}

	rec = httptest.NewRecorder()
	phttp.RespondError(rec, req, perr.Unavailablef("mongo down"))
	env = kit.DecodeJSON[phttp.Envelope](t, rec.Body)
	if rec.Code != http.StatusServiceUnavailable || env.Code != perr.ErrorCodeUnavailable || env.Error != "mongo down" {
		t.Fatalf("bad error envelope: %d %+v", rec.Code, env)
	}
}

func TestHandle_BareResponses(t *testing.T) {
	t.Parallel()
	type page struct {
		Levels    []string `json:"levels"`
		TotalRows int64    `json:"totalRows"`
	}

	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		check  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "bare ok has no envelope",
			resp:   phttp.BareOK(page{Levels: []string{}, TotalRows: 0}),
			status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := kit.DecodeJSON[map[string]any](t, rec.Body)
				if _, ok := got["status_code"]; ok {
					t.Fatalf("envelope leaked into bare body: %v", got)
				}
				if got["totalRows"] != float64(0) {
					t.Fatalf("totalRows = %v", got["totalRows"])
				}
			},
		},
		{
			name:   "bare error keeps only the client message",
			resp:   phttp.BareError(perr.Wrap(errors.New("dial tcp refused"), perr.ErrorCodeDB, "Error querying Levels")),
			status: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				got := kit.DecodeJSON[map[string]string](t, rec.Body)
				if len(got) != 1 || got["error"] != "Error querying Levels" {
					t.Fatalf("body = %v", got)
				}
			},
		},
		{
			name:   "bare method not allowed",
			resp:   phttp.BareError(perr.MethodNotAllowedf("Method not allowed")),
			status: http.StatusMethodNotAllowed,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				kit.MustContain(t, rec.Body.String(), `{"error":"Method not allowed"}`)
			},
		},
		{
			name:   "enveloped ok",
			resp:   phttp.OK("v"),
			status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				env := kit.DecodeJSON[phttp.Envelope](t, rec.Body)
				if env.Data != "v" || env.RequestID != "rid-2" {
					t.Fatalf("envelope = %+v", env)
				}
			},
		},
		{
			name:   "no content with header",
			resp:   phttp.Response{Status: http.StatusNoContent, Header: http.Header{"X-Test": {"1"}}},
			status: http.StatusNoContent,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				if rec.Body.Len() != 0 || rec.Header().Get("X-Test") != "1" {
					t.Fatalf("no content wrote %q", rec.Body.String())
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return c.resp })(rec, reqWithReqID(http.MethodGet, "/x", "rid-2"))
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d", rec.Code, c.status)
			}
			c.check(t, rec)
		})
	}
}
