package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
)

// flowedWidth is the soft-wrap column for outgoing format=flowed bodies.
const flowedWidth = 78

// encodeWord RFC2047-encodes a header value when it contains non-ASCII
// characters, and returns it untouched otherwise.
func encodeWord(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// formatAddress renders a mailbox for a header line. A name equal to the
// address carries no information and is dropped.
func formatAddress(name, address string) string {
	if name == "" || name == address {
		return address
	}
	return encodeWord(name) + " <" + address + ">"
}

// flowBody reflows text to the format=flowed convention: lines longer
// than width are soft-wrapped at the last space, and the trailing space
// kept on the wrapped chunk marks the continuation. The signature
// delimiter line is never rewrapped.
func flowBody(body string, width int) string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		if line == "-- " {
			out = append(out, line)
			continue
		}
		for len(line) > width {
			cut := strings.LastIndex(line[:width], " ")
			if cut <= 0 {
				break
			}
			out = append(out, line[:cut+1])
			line = line[cut+1:]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\r\n")
}

func encodeQuotedPrintable(s string) (string, error) {
	var buf bytes.Buffer
	w := quotedprintable.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// composeRaw assembles an outgoing RFC822 message and base64url-encodes
// it for the send endpoint. An empty fromAddress omits the From header so
// the server fills in the authenticated address. An empty replyToID means
// a fresh message rather than a reply.
func composeRaw(to Contact, subject, body, fromName, fromAddress, replyToID, mailer string) (string, error) {
	var b strings.Builder
	if replyToID != "" {
		b.WriteString("In-Reply-To: " + replyToID + "\r\n")
		b.WriteString("References: " + replyToID + "\r\n")
	}
	if fromAddress != "" {
		b.WriteString("From: " + formatAddress(fromName, fromAddress) + "\r\n")
	}
	b.WriteString("To: " + formatAddress(to.Name, to.Address) + "\r\n")
	b.WriteString("Subject: " + encodeWord(subject) + "\r\n")
	b.WriteString("X-Mailer: " + mailer + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8; format=flowed\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	b.WriteString("\r\n")

	encoded, err := encodeQuotedPrintable(flowBody(body, flowedWidth))
	if err != nil {
		return "", fmt.Errorf("encoding message body: %w", err)
	}
	b.WriteString(encoded)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}
