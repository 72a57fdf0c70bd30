package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/meetlite-api/internal/services"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserNameKey  = "user_name"

	// SessionCookie carries the session token for browser requests. API
	// clients may send the same token as a Bearer header instead.
	SessionCookie = "meetlite_session"
)

// Auth rejects requests without a valid session token with a 401. Used on the
// JSON API surface; page routes use Guard, which redirects instead.
func Auth(sessions *services.SessionService) drift.HandlerFunc {
	return func(c *drift.Context) {
		token := SessionToken(c.Request)
		if token == "" {
			c.Unauthorized("missing session token")
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// SessionToken extracts the session token from the cookie or, failing that,
// from a Bearer Authorization header.
func SessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func setIdentity(c *drift.Context, claims *services.SessionClaims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserNameKey, claims.Name)
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetUserName(c *drift.Context) string {
	if name, ok := c.Get(UserNameKey); ok {
		if n, ok := name.(string); ok {
			return n
		}
	}
	return ""
}
