package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseContact(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantName    string
		wantAddress string
	}{
		{
			name:        "quoted display name",
			raw:         `"Jane Doe" <jane@example.com>`,
			wantName:    "Jane Doe",
			wantAddress: "jane@example.com",
		},
		{
			name:        "unquoted display name",
			raw:         "Jane Doe <jane@example.com>",
			wantName:    "Jane Doe",
			wantAddress: "jane@example.com",
		},
		{
			name:        "bare address",
			raw:         "jane@example.com",
			wantName:    "jane@example.com",
			wantAddress: "jane@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseContact(tt.raw)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantAddress, got.Address)
			assert.Equal(t, GravatarURL(tt.wantAddress), got.GravatarURL)
		})
	}
}

func TestGravatarURL(t *testing.T) {
	want := "https://secure.gravatar.com/avatar/9e26471d35a78862c17e467d87cddedf?d=identicon"
	assert.Equal(t, want, GravatarURL("jane@example.com"))

	// Invariant to case and surrounding whitespace.
	assert.Equal(t, want, GravatarURL("  Jane@Example.COM "))
	assert.Equal(t, want, GravatarURL("JANE@EXAMPLE.COM"))
}

func TestParseContactList(t *testing.T) {
	got := ParseContactList(`"Jane Doe" <jane@example.com>, bob@example.com`)
	assert.Len(t, got, 2)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "jane@example.com", got[0].Address)
	assert.Equal(t, "bob@example.com", got[1].Name)
	assert.Equal(t, "bob@example.com", got[1].Address)
}

func TestParseContactListSingleEntry(t *testing.T) {
	got := ParseContactList("jane@example.com")
	assert.Len(t, got, 1)
	assert.Equal(t, "jane@example.com", got[0].Address)
}
