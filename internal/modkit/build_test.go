package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}

	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatal("default Subrouter should be identity")
	}
	b.Register(r)
}

func TestBuild_WithOptionsCopiesMiddleware(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return http.StripPrefix("", next) }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	subCalled, regCalled := 0, 0
	b := Build(
		WithName("search"),
		WithPrefix("/search"),
		WithMiddlewares(mid...),
		WithPorts(struct{ N int }{N: 20}),
		WithSubrouter(func(in httpkit.Router) httpkit.Router { subCalled++; return in }),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "search" || b.Prefix != "/search" {
		t.Fatalf("name/prefix = %q/%q", b.Name, b.Prefix)
	}
	if got, ok := b.Ports.(struct{ N int }); !ok || got.N != 20 {
		t.Fatalf("Ports = %#v", b.Ports)
	}

	mid[0] = mwB
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) {
		t.Fatal("Built.Mw must not alias the caller's slice")
	}

	var r httpkit.Router
	_ = b.Subrouter(r)
	b.Register(r)
	if subCalled != 1 || regCalled != 1 {
		t.Fatalf("hooks called sub=%d reg=%d", subCalled, regCalled)
	}
}

func TestWithMiddlewares_Accumulates(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	var c buildCfg
	WithMiddlewares(mw("a"), mw("b"))(&c)
	WithMiddlewares(mw("c"))(&c)

	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(c.mw) - 1; i >= 0; i-- {
		h = c.mw[i](h)
	}
	h.ServeHTTP(nil, nil)

	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Fatalf("order = %v", order)
	}
}
