package middleware

import (
	"net/http"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
)

// SessionPort resolves the user behind a request's session token
// it returns an empty id and an error when the token is missing or invalid
type SessionPort interface {
	UserID(r *http.Request) (string, error)
}

// Session attaches the session user to the request context when one resolves
// requests without a valid session continue anonymously
func Session(p SessionPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := p.UserID(r)
			if err != nil || uid == "" {
				if err != nil {
					logger.C(r.Context()).Debug().Err(err).Msg("anonymous request")
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
