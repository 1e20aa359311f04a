package handler

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Scetch/potw/internal/auth/provider"
	"github.com/Scetch/potw/internal/auth/resolver"
	"github.com/Scetch/potw/internal/httperr"
	"github.com/Scetch/potw/internal/logger"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/session"
)

const defaultProvider = "google"

// Handler drives the authorize/callback state machine:
// Anonymous -> AwaitingCallback (csrf in session) -> Authenticated
// (uid in session).
type Handler struct {
	providers    *provider.Registry
	resolver     resolver.Resolver
	hostedDomain string
	timeout      time.Duration
}

func NewHandler(
	registry *provider.Registry,
	resolver resolver.Resolver,
	hostedDomain string,
	timeout time.Duration,
) *Handler {
	return &Handler{
		providers:    registry,
		resolver:     resolver,
		hostedDomain: hostedDomain,
		timeout:      timeout,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, chain *middleware.Chain) {
	r.GET("/login", chain.Handle(h.Login))
	r.GET("/authorize", chain.Handle(h.Authorize))
	r.GET("/logout", chain.Handle(h.Logout))
}

// Login stores a fresh CSRF token in the session and redirects to the
// provider's authorization URL carrying it as state.
func (h *Handler) Login(c *gin.Context) (*middleware.Response, error) {
	p, err := h.providers.Get(defaultProvider)
	if err != nil {
		return nil, httperr.Internal("oauth provider", err)
	}

	state := generateState()

	sess := sessions.Default(c)
	session.SetCSRF(sess, state)
	if err := sess.Save(); err != nil {
		return nil, httperr.Internal("save session", err)
	}

	return middleware.Redirect(p.AuthCodeURL(state)), nil
}

// Authorize handles the provider callback. The CSRF check runs before
// any provider network call; a mismatch is a protocol violation and
// leaves the session untouched.
func (h *Handler) Authorize(c *gin.Context) (*middleware.Response, error) {
	code := c.Query("code")
	state := c.Query("state")

	sess := sessions.Default(c)
	csrf, ok := session.CSRF(sess)
	if !ok || csrf == "" || csrf != state {
		return nil, httperr.BadRequest("Invalid csrf state.")
	}
	if code == "" {
		return nil, httperr.BadRequest("Missing authorization code.")
	}

	p, err := h.providers.Get(defaultProvider)
	if err != nil {
		return nil, httperr.Internal("oauth provider", err)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	identity, err := p.Exchange(ctx, code)
	if err != nil {
		return nil, httperr.Upstream("oauth exchange failed", err)
	}

	if identity.HostedDomain != h.hostedDomain {
		// Session stays as-is so the user can retry with a correct
		// account.
		return nil, httperr.Forbidden("Account is not part of the required organization.")
	}

	uid, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		return nil, httperr.Internal("resolve user", err)
	}

	// The token is single-use: consumed here, never valid for a
	// second round trip.
	session.ClearCSRF(sess)
	session.SetUserID(sess, uid)
	if err := sess.Save(); err != nil {
		return nil, httperr.Internal("save session", err)
	}

	logger.Info("login", map[string]any{
		"provider": identity.Provider,
		"user_id":  uid,
	})

	return middleware.Redirect("/"), nil
}

func (h *Handler) Logout(c *gin.Context) (*middleware.Response, error) {
	sess := sessions.Default(c)
	session.ClearUserID(sess)
	if err := sess.Save(); err != nil {
		return nil, httperr.Internal("save session", err)
	}

	return middleware.Redirect("/"), nil
}
