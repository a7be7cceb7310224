package httpkit

import "net/http"

// Get registers a GET handler written through the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Any routes every method on path to h, the handler owns its method guard
func Any(r Router, path string, h func(*http.Request) Response) {
	r.Handle(path, http.HandlerFunc(Handle(h)))
}

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
