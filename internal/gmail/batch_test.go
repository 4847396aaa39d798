package gmail

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telmaron/gmailscope/internal/api"
)

func TestBuildBatchBody(t *testing.T) {
	body := string(buildBatchBody("b", []batchItem{
		{ID: "msg1", URI: "/gmail/v1/users/me/messages/msg1?format=full"},
		{ID: "msg2", URI: "/gmail/v1/users/me/messages/msg2?format=full"},
	}))

	assert.Contains(t, body, "--b\r\nContent-Type: application/http\r\nContent-ID: <item-0:msg1>\r\n\r\nGET /gmail/v1/users/me/messages/msg1?format=full\r\n\r\n")
	assert.Contains(t, body, "Content-ID: <item-1:msg2>")
	assert.True(t, strings.HasSuffix(body, "--b--\r\n"))
}

func batchPart(contentID, payload string) string {
	var b strings.Builder
	b.WriteString("Content-Type: application/http\r\n")
	if contentID != "" {
		b.WriteString("Content-ID: " + contentID + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString("HTTP/1.1 200 OK\r\n")
	b.WriteString("Content-Type: application/json; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(payload)
	b.WriteString("\r\n")
	return b.String()
}

func batchResponse(boundary string, parts ...string) []byte {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString(p)
	}
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

func TestParseBatchResponseCorrelatesByContentID(t *testing.T) {
	// Parts arrive in reverse order; Content-ID correlation restores
	// the request order.
	body := batchResponse("batch_xyz",
		batchPart("<response-item-1:msg2>", `{"id":"msg2"}`),
		batchPart("<response-item-0:msg1>", `{"id":"msg1"}`),
	)

	results, err := parseBatchResponse(body, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	var first, second wireMessage
	require.NoError(t, json.Unmarshal(results[0], &first))
	require.NoError(t, json.Unmarshal(results[1], &second))
	assert.Equal(t, "msg1", first.ID)
	assert.Equal(t, "msg2", second.ID)
}

func TestParseBatchResponseOrderFallback(t *testing.T) {
	body := batchResponse("batch_xyz",
		batchPart("", `{"id":"a"}`),
		batchPart("", `{"id":"b"}`),
	)

	results, err := parseBatchResponse(body, 2)
	require.NoError(t, err)
	var first wireMessage
	require.NoError(t, json.Unmarshal(results[0], &first))
	assert.Equal(t, "a", first.ID)
}

func TestParseBatchResponseSkipsMalformedParts(t *testing.T) {
	body := batchResponse("batch_xyz",
		batchPart("<response-item-0:msg1>", "not json at all"),
		batchPart("<response-item-1:msg2>", `{"id":"msg2"}`),
	)

	results, err := parseBatchResponse(body, 2)
	require.NoError(t, err)
	assert.Nil(t, results[0])
	assert.NotNil(t, results[1])
}

func TestParseBatchResponseMalformedBody(t *testing.T) {
	_, err := parseBatchResponse([]byte("no boundary here"), 1)
	var malformed *api.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestIndexNth(t *testing.T) {
	assert.Equal(t, 0, indexNth("abcabc", "abc", 1))
	assert.Equal(t, 3, indexNth("abcabc", "abc", 2))
	assert.Equal(t, -1, indexNth("abcabc", "abc", 3))
	assert.Equal(t, -1, indexNth("xyz", "abc", 1))
}
