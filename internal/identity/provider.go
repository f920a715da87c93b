package identity

import "context"

// Identity represents a normalized external authentication identity returned
// by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Name           string
	Email          string
	Picture        string
}

// Provider defines the contract an external identity provider must implement.
// Implementations return identity facts only and must not perform user
// creation or session management.
type Provider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// BeginAuth returns the provider consent URL for a redirect. State is
	// supplied by the caller and round-trips through the provider.
	BeginAuth(state string) string

	// CompleteAuth exchanges the authorization code for provider credentials
	// and returns a normalized identity. No auth decisions are made here.
	CompleteAuth(ctx context.Context, code string) (*Identity, error)
}
