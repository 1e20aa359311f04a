package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"potw.db"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./templates"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"./static"`

	// SessionSecret keys the encrypted session cookie. When empty a
	// random key is generated at startup, which invalidates sessions
	// across restarts.
	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE" envDefault:"false"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	// OAuthHostedDomain restricts sign-in to one organization's
	// accounts. Profiles outside this domain are rejected.
	OAuthHostedDomain string        `env:"OAUTH_HOSTED_DOMAIN" envDefault:"uwindsor.ca"`
	OAuthTimeout      time.Duration `env:"OAUTH_TIMEOUT" envDefault:"10s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
