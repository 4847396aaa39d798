package gmail

import (
	"encoding/base64"
	"strings"
)

// quotePalette is the fixed cycle of colors for nested quote levels,
// indexed by level mod 6.
var quotePalette = [6]string{
	"#5e97f6",
	"#33ac71",
	"#f4b400",
	"#db4437",
	"#9c27b0",
	"#795548",
}

// decodePlainTextBody walks a MIME part tree and renders the first
// plain-text part it finds. Multipart containers are searched in order
// and the first non-empty result wins; parts of any other type yield "".
func decodePlainTextBody(part *messagePart) string {
	if part == nil {
		return ""
	}
	if strings.HasPrefix(part.MimeType, "multipart") {
		for _, child := range part.Parts {
			if body := decodePlainTextBody(child); body != "" {
				return body
			}
		}
		return ""
	}
	if part.MimeType != "text/plain" {
		return ""
	}
	data, err := decodeBase64URL(part.Body.Data)
	if err != nil {
		// Malformed payload data degrades to "not fetched".
		return ""
	}
	return renderPlainText(string(data))
}

// decodeBase64URL accepts both padded and unpadded base64url, which the
// API is inconsistent about.
func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.URLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}

// renderPlainText converts decoded message text into display markup:
// nested quotes become colored font spans, hard line endings become <br>
// markers, and format=flowed soft breaks are joined.
func renderPlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	level := 0
	for _, line := range strings.Split(text, "\n") {
		depth := 0
		for depth < len(line) && line[depth] == '>' {
			depth++
		}
		content := line[depth:]
		if depth > 0 {
			// Quote padding: one space after the > run is convention,
			// not content.
			content = strings.TrimPrefix(content, " ")
		}

		for level < depth {
			b.WriteString(`<font color="` + quotePalette[level%6] + `">`)
			level++
		}
		for level > depth {
			b.WriteString("</font>")
			level--
		}

		b.WriteString(content)
		if !softBreak(content) {
			b.WriteString("<br>")
		}
	}
	for level > 0 {
		b.WriteString("</font>")
		level--
	}

	out := b.String()
	for strings.HasSuffix(out, "<br>") {
		out = strings.TrimSuffix(out, "<br>")
	}
	return out
}

// softBreak reports whether a line is a format=flowed continuation of the
// next one: it ends in a trailing space and is not the signature
// delimiter.
func softBreak(content string) bool {
	return strings.HasSuffix(content, " ") && content != "-- "
}
