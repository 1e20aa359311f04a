package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	authhandler "github.com/Scetch/potw/internal/auth/handler"
	"github.com/Scetch/potw/internal/auth/provider"
	"github.com/Scetch/potw/internal/auth/provider/google"
	"github.com/Scetch/potw/internal/auth/resolver"
	"github.com/Scetch/potw/internal/cache"
	"github.com/Scetch/potw/internal/config"
	"github.com/Scetch/potw/internal/logger"
	"github.com/Scetch/potw/internal/middleware"
	"github.com/Scetch/potw/internal/render"
	"github.com/Scetch/potw/internal/session"
	"github.com/Scetch/potw/internal/site"
	"github.com/Scetch/potw/internal/store"
	"github.com/Scetch/potw/internal/utils"
)

const (
	sessionCookieName = "potw_session"
	leaderboardTTL    = time.Minute
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	st := store.New(infra.DB.DB)
	leaderboard := cache.NewLeaderboard(infra.Redis, leaderboardTTL)

	engine, err := render.NewEngine(cfg.TemplatesDir)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(ctx, google.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		HostedDomain: cfg.OAuthHostedDomain,
	})
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)
	identityResolver := resolver.NewDBResolver(st)

	authHandler := authhandler.NewHandler(
		registry,
		identityResolver,
		cfg.OAuthHostedDomain,
		cfg.OAuthTimeout,
	)

	siteHandler := site.New(st, leaderboard)

	// ----------------------------
	// Interceptor chains
	// ----------------------------

	currentUser := &middleware.CurrentUser{Users: st}
	renderer := &middleware.Renderer{Engine: engine}
	notFound := middleware.NotFound{TemplateName: "404.html"}

	chain := middleware.NewChain(renderer, currentUser, notFound)
	adminChain := middleware.NewChain(renderer, currentUser, middleware.RequireAdmin{}, notFound)

	// ----------------------------
	// Router
	// ----------------------------

	secret := cfg.SessionSecret
	if secret == "" {
		secret = utils.RandomString(32)
		logger.Warn("SESSION_SECRET not set, sessions will not survive restarts", nil)
	}

	sessionStore := cookie.NewStore(session.Keys(secret)...)
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))

	router.Static("/static", cfg.StaticDir)

	authHandler.RegisterRoutes(router, chain)
	siteHandler.RegisterRoutes(router, chain, adminChain)

	return router, func() error {
		if infra.Redis != nil {
			infra.Redis.Close()
		}
		return infra.DB.Close()
	}, nil
}
