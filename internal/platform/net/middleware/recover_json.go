package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 and logs the stack with the request id
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.JSON(w, http.StatusInternalServerError, phttp.ErrorBody{
				Error: http.StatusText(http.StatusInternalServerError),
			})
		}()
		next.ServeHTTP(w, r)
	})
}
