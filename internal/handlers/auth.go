package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
	"github.com/veljkom/meetlite-api/internal/config"
	"github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/oauth"
	"github.com/veljkom/meetlite-api/internal/telemetry"
	"github.com/veljkom/meetlite-api/pkg/dto"
)

type AuthHandler struct {
	cfg       *config.Config
	providers map[string]oauth.Provider
	users     UserServiceInterface
	sessions  SessionServiceInterface
	log       *logrus.Logger
	states    sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	users UserServiceInterface,
	sessions SessionServiceInterface,
	log *logrus.Logger,
) *AuthHandler {
	h := &AuthHandler{
		cfg:       cfg,
		providers: make(map[string]oauth.Provider),
		users:     users,
		sessions:  sessions,
		log:       log,
	}

	if cfg.Google.ClientID != "" {
		h.providers["google"] = oauth.NewGoogleProvider(cfg.Google)
	}
	if cfg.GitHub.ClientID != "" {
		h.providers["github"] = oauth.NewGitHubProvider(cfg.GitHub)
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

// Consent sends the browser to the provider's consent screen.
func (h *AuthHandler) Consent(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	http.Redirect(c.Response, c.Request, p.GetConsentURL(state), http.StatusFound)
}

// Callback completes the OAuth flow: verify state, exchange the code, ensure
// a user record exists and issue the session cookie. Any database failure
// fails closed; no session is issued and the visitor lands back on the login
// page with an error.
func (h *AuthHandler) Callback(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		h.redirectWithError(c, "unsupported provider")
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.redirectWithError(c, "invalid or expired state")
		return
	}

	sdTyped, ok := sd.(stateData)
	if !ok || time.Now().After(sdTyped.expiresAt) {
		h.redirectWithError(c, "state expired")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userInfo, err := p.ExchangeCode(ctx, code)
	if err != nil {
		h.log.WithField("provider", provider).WithError(err).Warn("code exchange failed")
		h.redirectWithError(c, "failed to exchange code")
		return
	}

	user, err := h.users.FindOrCreateFromOAuth(ctx, userInfo)
	if err != nil {
		h.log.WithField("provider", provider).WithError(err).Error("sign-in failed")
		telemetry.CountSignIn(false)
		h.redirectWithError(c, "sign-in failed")
		return
	}

	sessionToken, err := h.sessions.Issue(user, userInfo.AccessToken)
	if err != nil {
		telemetry.CountSignIn(false)
		h.redirectWithError(c, "failed to create session")
		return
	}

	http.SetCookie(c.Response, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(h.sessions.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	telemetry.CountSignIn(true)
	http.Redirect(c.Response, c.Request, "/", http.StatusFound)
}

// Logout clears the session cookie. The token itself simply expires; there is
// no server-side session state to revoke.
func (h *AuthHandler) Logout(c *drift.Context) {
	http.SetCookie(c.Response, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(200, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	http.Redirect(c.Response, c.Request,
		middleware.LoginPath+"?error="+url.QueryEscape(errMsg),
		http.StatusFound)
}
