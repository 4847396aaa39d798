package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular address", email: "jane@example.com"},
		{name: "uppercase address", email: "JANE@EXAMPLE.COM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnonymizeEmail(tt.email)
			assert.True(t, strings.HasPrefix(got, "user:"))
			assert.NotContains(t, got, "@")
			// Deterministic: same input, same hash.
			assert.Equal(t, got, AnonymizeEmail(tt.email))
		})
	}

	assert.Equal(t, "", AnonymizeEmail(""))
	assert.NotEqual(t, AnonymizeEmail("a@example.com"), AnonymizeEmail("b@example.com"))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	got := SanitizeToken("ya29.secret-token-value")
	assert.NotContains(t, got, "secret")
	assert.Equal(t, "[token:23 chars]", got)
}

func TestErrNilIsOmittable(t *testing.T) {
	attr := Err(nil)
	assert.Equal(t, "", attr.Key)
}
