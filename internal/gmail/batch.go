package gmail

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/telmaron/gmailscope/internal/api"
)

// batchItem is one sub-request of a batch call: the resource id and the
// host-relative URI to GET for it.
type batchItem struct {
	ID  string
	URI string
}

// newBoundary returns a fresh multipart boundary for one batch request.
func newBoundary() string {
	var buf [12]byte
	_, _ = rand.Read(buf[:])
	return "batch_" + hex.EncodeToString(buf[:])
}

// buildBatchBody frames the sub-requests into one multipart/mixed body.
// Each part carries a Content-ID embedding the item's index so the
// response can be correlated without relying on part order.
func buildBatchBody(boundary string, items []batchItem) []byte {
	var b strings.Builder
	for i, item := range items {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: application/http\r\n")
		b.WriteString(fmt.Sprintf("Content-ID: <item-%d:%s>\r\n", i, item.ID))
		b.WriteString("\r\n")
		b.WriteString("GET " + item.URI + "\r\n")
		b.WriteString("\r\n")
	}
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// The server echoes our Content-ID prefixed with "response-", so the
// original index is still embedded.
var contentIDIndex = regexp.MustCompile(`Content-ID:.*item-(\d+):`)

// parseBatchResponse splits a batch response into the embedded JSON
// payloads, one slot per requested item. The boundary is taken from the
// first line of the body. Parts are placed by the index from their
// Content-ID; request order is only a fallback for parts where that
// header is missing or unreadable. Failed or empty parts leave a nil
// slot.
func parseBatchResponse(body []byte, n int) ([]json.RawMessage, error) {
	s := string(body)
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return nil, &api.MalformedResponseError{Reason: "batch response has no boundary line"}
	}
	delim := strings.TrimRight(s[:nl], "\r")
	if !strings.HasPrefix(delim, "--") {
		return nil, &api.MalformedResponseError{Reason: "batch response does not start with a boundary"}
	}

	results := make([]json.RawMessage, n)
	next := 0
	for _, part := range strings.Split(s, delim) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" || trimmed == "--" {
			continue
		}
		// The part contains its own headers, then the embedded HTTP
		// response's headers, then the payload: everything after the
		// second blank line.
		sep := indexNth(part, "\r\n\r\n", 2)
		if sep < 0 {
			continue
		}
		payload := strings.TrimSpace(part[sep+4:])
		if payload == "" || !json.Valid([]byte(payload)) {
			continue
		}

		slot := -1
		if m := contentIDIndex.FindStringSubmatch(part[:sep]); m != nil {
			if i, err := strconv.Atoi(m[1]); err == nil && i >= 0 && i < n {
				slot = i
			}
		}
		if slot < 0 {
			for next < n && results[next] != nil {
				next++
			}
			if next >= n {
				continue
			}
			slot = next
		}
		results[slot] = json.RawMessage(payload)
	}
	return results, nil
}

// indexNth returns the byte offset of the nth occurrence of sep in s, or
// -1 when there are fewer.
func indexNth(s, sep string, n int) int {
	offset := 0
	for i := 0; i < n; i++ {
		idx := strings.Index(s[offset:], sep)
		if idx < 0 {
			return -1
		}
		offset += idx
		if i < n-1 {
			offset += len(sep)
		}
	}
	return offset
}
