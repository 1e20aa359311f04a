package provider

import "fmt"

// Registry indexes the configured OAuth providers the login flow can
// hand a user off to. It holds no auth logic itself.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry indexes the given providers by name. Names must be
// unique; a duplicate name replaces the earlier provider.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the named provider, or an error when the login flow asks
// for a provider that was never configured.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("no oauth provider configured for %q", name)
	}
	return p, nil
}
