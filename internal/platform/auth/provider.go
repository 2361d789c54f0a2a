package auth

import "context"

// Identity is the normalized profile shape every sign-in path produces,
// regardless of the provider's own payload layout.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// Token holds the result of an authorization-code exchange.
type Token struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	Scope        string
}

// Provider is an external OAuth2 identity provider. Implementations supply
// endpoint URLs and payload mapping; the authorization-code flow itself
// (state, PKCE, session issuance) is driven by the Handler.
type Provider interface {
	// Name is the stable identifier used in routes and session claims.
	Name() string

	// AuthCodeURL builds the authorization redirect URL for this provider.
	AuthCodeURL(redirectURI, state, codeChallenge string) string

	// Exchange trades an authorization code (plus the PKCE verifier) for an
	// access token. A non-success HTTP response fails the exchange with the
	// response body included in the error.
	Exchange(ctx context.Context, code, verifier, redirectURI string) (*Token, error)

	// Profile fetches the provider's profile payload with the access token
	// and maps it into the normalized Identity.
	Profile(ctx context.Context, accessToken string) (*Identity, error)
}
