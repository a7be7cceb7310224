package modkit

import (
	"net/http"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs and returns a plain struct with defaulted hooks
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount is the MountRoutes body shared by modules built through Build
// it scopes b.Mw to b.Prefix, applies the subrouter hook, then runs register and the external hook
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(sub httpkit.Router) {
		sub = b.Subrouter(sub)
		if register != nil {
			register(sub)
		}
		b.Register(sub)
	})
}
