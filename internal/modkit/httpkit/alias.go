// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope
	// Response is the HTTP response type
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns an enveloped 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns an enveloped error response
func Error(err error) Response { return phttp.Error(err) }

// BareOK returns a 200 response without the envelope
func BareOK(data any) Response { return phttp.BareOK(data) }

// BareError returns an error response shaped {"error": msg}
func BareError(err error) Response { return phttp.BareError(err) }

// Call adapts a handler that returns a value or an error to the envelope writer
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
