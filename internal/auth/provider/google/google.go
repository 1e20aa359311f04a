package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Scetch/potw/internal/auth"
)

const providerName = "google"

const (
	issuerURL   = "https://accounts.google.com"
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// HostedDomain is passed as the hd hint so the account chooser
	// only offers the organization's accounts. Enforcement of the
	// returned profile happens in the callback handler.
	HostedDomain string

	// Endpoint overrides for tests; defaults are Google's.
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

type Provider struct {
	oauthConfig  *oauth2.Config
	oidcProvider *oidc.Provider
	hostedDomain string
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	if cfg.AuthURL == "" {
		cfg.AuthURL = authURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = tokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = userInfoURL
	}

	// Endpoints are pinned, so the provider is built without issuer
	// discovery and startup needs no network round trip.
	oidcProvider := (&oidc.ProviderConfig{
		IssuerURL:   issuerURL,
		AuthURL:     cfg.AuthURL,
		TokenURL:    cfg.TokenURL,
		UserInfoURL: cfg.UserInfoURL,
	}).NewProvider(ctx)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig:  oauthCfg,
		oidcProvider: oidcProvider,
		hostedDomain: cfg.HostedDomain,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the authorization URL with the hd domain hint.
func (p *Provider) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	if p.hostedDomain != "" {
		opts = append(opts, oauth2.SetAuthURLParam("hd", p.hostedDomain))
	}
	return p.oauthConfig.AuthCodeURL(state, opts...)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*auth.Identity, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	userInfo, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch failed: %w", err)
	}

	var claims struct {
		HostedDomain string `json:"hd"`
	}
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("google userinfo claims parse failed: %w", err)
	}

	if userInfo.Subject == "" || userInfo.Email == "" {
		return nil, errors.New("google userinfo missing required claims")
	}

	return &auth.Identity{
		Provider:     providerName,
		Subject:      userInfo.Subject,
		Email:        userInfo.Email,
		HostedDomain: claims.HostedDomain,
	}, nil
}
