package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultAPIRoot, cfg.APIRoot)
	assert.Equal(t, DefaultBatchRoot, cfg.BatchRoot)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.NotNil(t, cfg.Cache)
	assert.False(t, cfg.Authenticated())
}

func TestSetCredentials(t *testing.T) {
	cfg := NewConfig()
	cfg.SetCredentials("tok", "id", "secret")

	assert.True(t, cfg.Authenticated())
	assert.Equal(t, "tok", cfg.AccessToken())
	assert.Equal(t, "id", cfg.ClientID())
	assert.Equal(t, "secret", cfg.ClientSecret())

	// A refresh replaces the previous values in place.
	cfg.SetCredentials("tok2", "id", "secret")
	assert.Equal(t, "tok2", cfg.AccessToken())

	cfg.SetCredentials("", "", "")
	assert.False(t, cfg.Authenticated())
}
