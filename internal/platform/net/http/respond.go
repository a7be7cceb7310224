// Package http provides JSON response helpers, the router seam and the server wrapper
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"
	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
)

// Envelope is the response body for operational endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// ErrorBody is the bare error shape used by public search endpoints
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, Envelope{
		StatusCode: stdhttp.StatusOK,
		Status:     stdhttp.StatusText(stdhttp.StatusOK),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
	})
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wr := perr.HTTP(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		RequestID:  pnet.RequestID(r.Context()),
	})
}

// Response is a return-style response for early returns in handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// Bare skips the envelope: success bodies are written as is and errors as ErrorBody
	Bare bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		if !resp.Bare {
			RespondError(w, r, err)
			return
		}
		JSON(w, perr.HTTPStatus(err), ErrorBody{Error: perr.MessageOf(err)})
		return
	}

	if resp.Bare {
		JSON(w, status, resp.Body)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

// OK returns an enveloped 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns an enveloped error response
func Error(err error) Response { return Response{Body: err} }

// BareOK returns a 200 response written without an envelope
func BareOK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data, Bare: true} }

// BareError returns an error response written as {"error": msg}
func BareError(err error) Response { return Response{Body: err, Bare: true} }
