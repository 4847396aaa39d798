package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	data, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(data)
}

func TestComposeRawHeaders(t *testing.T) {
	raw, err := composeRaw(
		Contact{Name: "Bob", Address: "bob@example.com"},
		"Hello", "body text", "Jane", "jane@example.com", "", "gmailscope/1.0")
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Contains(t, msg, "From: Jane <jane@example.com>\r\n")
	assert.Contains(t, msg, "To: Bob <bob@example.com>\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "X-Mailer: gmailscope/1.0\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8; format=flowed\r\n")
	assert.Contains(t, msg, "Content-Transfer-Encoding: quoted-printable\r\n")
	assert.Contains(t, msg, "\r\n\r\nbody text")

	// Not a reply: no threading headers.
	assert.NotContains(t, msg, "In-Reply-To:")
	assert.NotContains(t, msg, "References:")
}

func TestComposeRawReplyHeaders(t *testing.T) {
	raw, err := composeRaw(
		Contact{Address: "bob@example.com"},
		"Re: Hello", "body", "", "jane@example.com", "<orig@example.com>", "gmailscope/1.0")
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.Contains(t, msg, "In-Reply-To: <orig@example.com>\r\n")
	assert.Contains(t, msg, "References: <orig@example.com>\r\n")
}

func TestComposeRawOmitsFromWhenAddressUnknown(t *testing.T) {
	raw, err := composeRaw(
		Contact{Address: "bob@example.com"},
		"Hello", "body", "Jane", "", "", "gmailscope/1.0")
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	assert.NotContains(t, msg, "From:")
	assert.Contains(t, msg, "To: bob@example.com\r\n")
}

func TestComposeRawEncodesNonASCII(t *testing.T) {
	raw, err := composeRaw(
		Contact{Name: "Jürgen", Address: "j@example.com"},
		"Grüße", "café", "", "", "", "gmailscope/1.0")
	require.NoError(t, err)

	msg := decodeRaw(t, raw)
	// RFC2047 words in the headers, quoted-printable in the body.
	assert.Contains(t, msg, "Subject: =?UTF-8?")
	assert.Contains(t, msg, "To: =?UTF-8?")
	assert.Contains(t, msg, "caf=C3=A9")
	assert.NotContains(t, msg, "Grüße")
}

func TestEncodeWordASCIIUntouched(t *testing.T) {
	assert.Equal(t, "plain subject", encodeWord("plain subject"))
	assert.True(t, strings.HasPrefix(encodeWord("héllo"), "=?UTF-8?B?"))
	assert.True(t, strings.HasSuffix(encodeWord("héllo"), "?="))
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "Jane <j@example.com>", formatAddress("Jane", "j@example.com"))
	assert.Equal(t, "j@example.com", formatAddress("", "j@example.com"))
	// Name equal to the address carries no information.
	assert.Equal(t, "j@example.com", formatAddress("j@example.com", "j@example.com"))
}

func TestFlowBody(t *testing.T) {
	// Wraps at the last space before the width, keeping the trailing
	// space as the soft-break marker.
	assert.Equal(t, "aaa \r\nbbb ccc", flowBody("aaa bbb ccc", 7))

	// Short lines and the signature delimiter are untouched.
	assert.Equal(t, "short", flowBody("short", 78))
	assert.Equal(t, "-- \r\nsig", flowBody("-- \nsig", 78))

	// A long run without spaces cannot be wrapped.
	long := strings.Repeat("x", 100)
	assert.Equal(t, long, flowBody(long, 78))
}

func TestEncodeQuotedPrintable(t *testing.T) {
	got, err := encodeQuotedPrintable("café")
	require.NoError(t, err)
	assert.Equal(t, "caf=C3=A9", got)
}
