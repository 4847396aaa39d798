package creds

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/telmaron/gmailscope/internal/api"
)

// EnvToken is the environment variable EnvProvider reads the bearer token
// from.
const EnvToken = "GMAILSCOPE_TOKEN"

// Credentials is what a completed login yields: the bearer token used on
// every request plus the client identifiers of the registered application.
type Credentials struct {
	AccessToken  string
	ClientID     string
	ClientSecret string
}

// Provider supplies credentials obtained by an external login flow.
type Provider interface {
	// Authenticated reports whether a login is present without forcing a
	// token read or refresh.
	Authenticated() bool

	// Credentials returns the current credentials. Implementations backed
	// by a refreshable source return the freshest token available.
	Credentials(ctx context.Context) (Credentials, error)
}

// Apply copies the provider's credentials into cfg. It is the bridge
// between the login flow and the API session: call it once at startup and
// again whenever the provider refreshes.
func Apply(ctx context.Context, p Provider, cfg *api.Config) error {
	if !p.Authenticated() {
		return api.ErrUnauthenticated
	}
	c, err := p.Credentials(ctx)
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}
	cfg.SetCredentials(c.AccessToken, c.ClientID, c.ClientSecret)
	return nil
}

// StaticProvider holds fixed credentials. Used by tests and by callers
// that already hold a token string.
type StaticProvider struct {
	Token        string
	ClientID     string
	ClientSecret string
}

// Authenticated implements Provider.
func (p *StaticProvider) Authenticated() bool {
	return p.Token != ""
}

// Credentials implements Provider.
func (p *StaticProvider) Credentials(context.Context) (Credentials, error) {
	if p.Token == "" {
		return Credentials{}, api.ErrUnauthenticated
	}
	return Credentials{
		AccessToken:  p.Token,
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
	}, nil
}

// EnvProvider reads the bearer token from the GMAILSCOPE_TOKEN environment
// variable.
type EnvProvider struct{}

// Authenticated implements Provider.
func (EnvProvider) Authenticated() bool {
	return os.Getenv(EnvToken) != ""
}

// Credentials implements Provider.
func (EnvProvider) Credentials(context.Context) (Credentials, error) {
	token := os.Getenv(EnvToken)
	if token == "" {
		return Credentials{}, api.ErrUnauthenticated
	}
	return Credentials{AccessToken: token}, nil
}

// TokenSourceProvider adapts an oauth2.TokenSource. The source owns
// refresh; Credentials surfaces whatever token it currently produces.
type TokenSourceProvider struct {
	Source       oauth2.TokenSource
	ClientID     string
	ClientSecret string
}

// NewTokenSourceProvider wraps ts in a reusing source so repeated reads do
// not hammer the refresh endpoint.
func NewTokenSourceProvider(ts oauth2.TokenSource, clientID, clientSecret string) *TokenSourceProvider {
	return &TokenSourceProvider{
		Source:       oauth2.ReuseTokenSource(nil, ts),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// Authenticated implements Provider.
func (p *TokenSourceProvider) Authenticated() bool {
	if p.Source == nil {
		return false
	}
	token, err := p.Source.Token()
	return err == nil && token.Valid()
}

// Credentials implements Provider.
func (p *TokenSourceProvider) Credentials(context.Context) (Credentials, error) {
	if p.Source == nil {
		return Credentials{}, api.ErrUnauthenticated
	}
	token, err := p.Source.Token()
	if err != nil {
		return Credentials{}, fmt.Errorf("token source: %w", err)
	}
	return Credentials{
		AccessToken:  token.AccessToken,
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
	}, nil
}
