package auth

// Identity represents a normalized external identity returned by an
// OAuth provider. It contains facts only, no decisions: domain
// enforcement and user provisioning happen in the callback handler and
// the resolver.
type Identity struct {
	Provider     string // e.g. "google"
	Subject      string // provider-scoped unique user identifier (sub)
	Email        string // email returned by the provider
	HostedDomain string // organizational domain asserted by the provider
}
