package httpkit

import (
	"net/http"
	"strings"
	"time"

	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimUserID is the private claim carrying the session user id
const ClaimUserID = "userId"

// SessionAuth verifies session tokens and implements middleware.SessionPort
type SessionAuth struct {
	ja     *jwtauth.JWTAuth
	cookie string
	now    func() time.Time
}

// NewSessionAuth builds an HS256 session verifier
// tokens are read from the named cookie first, then from Authorization: Bearer
func NewSessionAuth(secret, cookie string) *SessionAuth {
	if strings.TrimSpace(secret) == "" {
		panic("httpkit: session secret is required")
	}
	if cookie == "" {
		cookie = "token"
	}
	return &SessionAuth{
		ja:     jwtauth.New("HS256", []byte(secret), nil),
		cookie: cookie,
		now:    time.Now,
	}
}

// UserID returns the user behind the request's session token
func (s *SessionAuth) UserID(r *http.Request) (string, error) {
	tok, err := jwtauth.VerifyRequest(s.ja, r, s.fromCookie, jwtauth.TokenFromHeader)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnauthorized, "invalid session")
	}
	if v, ok := tok.Get(ClaimUserID); ok {
		if id, ok := v.(string); ok && id != "" {
			return id, nil
		}
	}
	if sub := tok.Subject(); sub != "" {
		return sub, nil
	}
	return "", perr.Unauthorizedf("session token has no user")
}

// Mint signs a session token for userID valid for ttl
func (s *SessionAuth) Mint(userID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		ClaimUserID: userID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	_, token, err := s.ja.Encode(claims)
	return token, err
}

func (s *SessionAuth) fromCookie(r *http.Request) string {
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return ""
	}
	return c.Value
}
