package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowLog     time.Duration
	Session     middleware.SessionPort
}

// CommonStack returns the baseline middleware for the public API
// order matters: request id before access log, access log before session
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowLog}),
		middleware.RecoverJSON,
		middleware.NoCache(),
	}
	if len(o.CORSOrigins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{
			AllowedOrigins:   o.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	return append(stack,
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
		middleware.Session(o.Session),
	)
}
