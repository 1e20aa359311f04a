package provider

import (
	"context"

	"github.com/Scetch/potw/internal/auth"
)

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations return identity facts only and
// must not perform user creation, linking, or session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the provider authorization URL for the
	// given anti-forgery state token.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for an access token and
	// fetches the user's profile with it.
	Exchange(ctx context.Context, code string) (*auth.Identity, error)
}
