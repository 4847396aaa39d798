package api

import "sync"

// Default endpoints and identification for the Gmail REST API.
const (
	DefaultAPIRoot   = "https://gmail.googleapis.com/gmail/v1"
	DefaultBatchRoot = "https://gmail.googleapis.com/batch/gmail/v1"
	DefaultUserAgent = "gmailscope/1.0"
)

// Config is the session-scoped state shared between the transport and the
// client facade: endpoints, identification and the credentials supplied by
// an external login flow. It is safe for concurrent use; a token refresh
// overwrites the credentials in place.
type Config struct {
	// APIRoot is the base for all regular API request URLs.
	APIRoot string

	// BatchRoot is the endpoint batch requests are POSTed to. Batch URLs
	// are not nested under APIRoot.
	BatchRoot string

	// UserAgent is sent with every request.
	UserAgent string

	// Cache holds session-scoped values that are computed at most once
	// (user address, label list). A fresh Config gets a fresh cache.
	Cache *Cache

	mu           sync.RWMutex
	accessToken  string
	clientID     string
	clientSecret string
}

// NewConfig returns a Config with the default endpoints and an empty cache.
func NewConfig() *Config {
	return &Config{
		APIRoot:   DefaultAPIRoot,
		BatchRoot: DefaultBatchRoot,
		UserAgent: DefaultUserAgent,
		Cache:     NewCache(),
	}
}

// SetCredentials stores the bearer token and client credentials obtained
// from the credential provider. Calling it again replaces the previous
// values, which is how token refreshes are propagated.
func (c *Config) SetCredentials(accessToken, clientID, clientSecret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.clientID = clientID
	c.clientSecret = clientSecret
}

// AccessToken returns the current bearer token, or "" when not logged in.
func (c *Config) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// ClientID returns the OAuth client id supplied by the credential provider.
func (c *Config) ClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientID
}

// ClientSecret returns the OAuth client secret supplied by the credential
// provider.
func (c *Config) ClientSecret() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientSecret
}

// Authenticated reports whether a bearer token is present.
func (c *Config) Authenticated() bool {
	return c.AccessToken() != ""
}
