package middleware

import (
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/meetlite-api/internal/services"
)

// LoginPath is the only page an unauthenticated visitor may see.
const LoginPath = "/user-auth"

type Decision int

const (
	Allow Decision = iota
	RedirectHome
	RedirectLogin
)

// Decide is the route-guard rule as a pure function of the request path and
// whether a valid session is present:
//
//	login page + session   -> home
//	other page, no session -> login page
//	anything else          -> through unchanged
func Decide(path string, authenticated bool) Decision {
	switch {
	case path == LoginPath && authenticated:
		return RedirectHome
	case path != LoginPath && !authenticated:
		return RedirectLogin
	default:
		return Allow
	}
}

// Guard applies Decide before every handler it wraps. It only redirects or
// continues; it never mutates session state. On allow, the identity from the
// session is stashed in the request context for downstream handlers.
func Guard(sessions *services.SessionService) drift.HandlerFunc {
	return func(c *drift.Context) {
		var claims *services.SessionClaims
		if token := SessionToken(c.Request); token != "" {
			if parsed, err := sessions.Validate(token); err == nil {
				claims = parsed
			}
		}

		switch Decide(c.Request.URL.Path, claims != nil) {
		case RedirectHome:
			http.Redirect(c.Response, c.Request, "/", http.StatusFound)
			c.Abort()
		case RedirectLogin:
			http.Redirect(c.Response, c.Request, LoginPath, http.StatusFound)
			c.Abort()
		default:
			if claims != nil {
				setIdentity(c, claims)
			}
			c.Next()
		}
	}
}
