package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func textPart(body string) *messagePart {
	return &messagePart{
		MimeType: "text/plain",
		Body:     partBody{Data: base64.URLEncoding.EncodeToString([]byte(body))},
	}
}

// stripMarkup undoes the rendering for round-trip checks: break markers
// back to newlines, font spans removed.
func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	for _, color := range quotePalette {
		s = strings.ReplaceAll(s, `<font color="`+color+`">`, "")
	}
	return strings.ReplaceAll(s, "</font>", "")
}

func TestDecodePlainTextBodyRoundTrip(t *testing.T) {
	const text = "Hello world\nSecond line\nThird"
	got := decodePlainTextBody(textPart(text))
	assert.Equal(t, text, stripMarkup(got))
}

func TestDecodePlainTextBodyBreakMarkers(t *testing.T) {
	got := decodePlainTextBody(textPart("Hello world\nSecond line"))
	assert.Equal(t, "Hello world<br>Second line", got)
}

func TestDecodePlainTextBodyQuoting(t *testing.T) {
	got := decodePlainTextBody(textPart("> quoted line\nreply text"))
	assert.Equal(t, `<font color="#5e97f6">quoted line<br></font>reply text`, got)
}

func TestDecodePlainTextBodyNestedQuotes(t *testing.T) {
	got := decodePlainTextBody(textPart(">> deep\n> shallow\nplain"))
	want := `<font color="#5e97f6"><font color="#33ac71">deep<br></font>shallow<br></font>plain`
	assert.Equal(t, want, got)
}

func TestDecodePlainTextBodyMarkersBalanced(t *testing.T) {
	bodies := []string{
		"no quotes at all",
		"> one\n>> two\n>>> three",
		">>>>>>> seven levels wraps the palette\nplain",
		"> a\nb\n> c\n>> d",
		"> quoted to the very end",
	}
	for _, body := range bodies {
		got := decodePlainTextBody(textPart(body))
		assert.Equal(t,
			strings.Count(got, "<font"),
			strings.Count(got, "</font>"),
			"unbalanced markers for %q", body)
	}
}

func TestDecodePlainTextBodyPaletteCycles(t *testing.T) {
	got := decodePlainTextBody(textPart(">>>>>>> deep"))
	// Level 7 reuses the first palette color for the seventh marker.
	assert.Equal(t, 2, strings.Count(got, quotePalette[0]))
}

func TestDecodePlainTextBodyFlowedContinuation(t *testing.T) {
	got := decodePlainTextBody(textPart("line one \ncontinues\n-- \nsig"))
	// The soft break joins without a marker; the signature delimiter is
	// a hard break despite its trailing space.
	assert.Equal(t, "line one continues<br>-- <br>sig", got)
}

func TestDecodePlainTextBodyCRLF(t *testing.T) {
	got := decodePlainTextBody(textPart("a\r\nb"))
	assert.Equal(t, "a<br>b", got)
}

func TestDecodePlainTextBodyTrailingBreaksTrimmed(t *testing.T) {
	got := decodePlainTextBody(textPart("text\n\n\n"))
	assert.Equal(t, "text", got)
}

func TestDecodePlainTextBodyMultipart(t *testing.T) {
	tree := &messagePart{
		MimeType: "multipart/alternative",
		Parts: []*messagePart{
			{MimeType: "text/html", Body: partBody{Data: base64.URLEncoding.EncodeToString([]byte("<b>html</b>"))}},
			textPart("plain wins"),
		},
	}
	assert.Equal(t, "plain wins", decodePlainTextBody(tree))

	nested := &messagePart{
		MimeType: "multipart/mixed",
		Parts:    []*messagePart{{MimeType: "multipart/alternative", Parts: []*messagePart{textPart("nested")}}},
	}
	assert.Equal(t, "nested", decodePlainTextBody(nested))
}

func TestDecodePlainTextBodyNonText(t *testing.T) {
	assert.Equal(t, "", decodePlainTextBody(nil))
	assert.Equal(t, "", decodePlainTextBody(&messagePart{MimeType: "image/png"}))
	assert.Equal(t, "", decodePlainTextBody(&messagePart{MimeType: "multipart/mixed"}))
}

func TestDecodePlainTextBodyUnpaddedBase64(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte("unpadded"))
	got := decodePlainTextBody(&messagePart{MimeType: "text/plain", Body: partBody{Data: raw}})
	assert.Equal(t, "unpadded", got)
}

func TestDecodePlainTextBodyMalformedData(t *testing.T) {
	got := decodePlainTextBody(&messagePart{MimeType: "text/plain", Body: partBody{Data: "!!!not base64!!!"}})
	assert.Equal(t, "", got)
}
