package gmail

import (
	"encoding/json"
	"html"

	"github.com/telmaron/gmailscope/internal/api"
)

// Wire shapes of the REST API. Only the fields this client reads are
// declared; everything else in a response is ignored.

type headerField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type partBody struct {
	Data string `json:"data"`
	Size int64  `json:"size"`
}

type messagePart struct {
	MimeType string         `json:"mimeType"`
	Filename string         `json:"filename"`
	Headers  []headerField  `json:"headers"`
	Body     partBody       `json:"body"`
	Parts    []*messagePart `json:"parts"`
}

type wireMessage struct {
	ID       string       `json:"id"`
	ThreadID string       `json:"threadId"`
	Snippet  string       `json:"snippet"`
	LabelIDs []string     `json:"labelIds"`
	Payload  *messagePart `json:"payload"`
}

type wireMessageList struct {
	Messages      []wireMessage `json:"messages"`
	NextPageToken string        `json:"nextPageToken"`
}

type wireThread struct {
	ID       string        `json:"id"`
	Messages []wireMessage `json:"messages"`
}

type wireThreadList struct {
	Threads       []wireThread `json:"threads"`
	NextPageToken string       `json:"nextPageToken"`
}

type wireLabel struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	LabelListVisibility string `json:"labelListVisibility"`
}

type wireLabelList struct {
	Labels []wireLabel `json:"labels"`
}

type wireProfile struct {
	EmailAddress string `json:"emailAddress"`
}

// decodeJSON unmarshals a whole response document. Failure here means the
// endpoint did not return the document it is defined to return, which is
// the one parse problem that aborts a call.
func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &api.MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	return nil
}

// parseEmail assembles a typed Email from its wire form. Server snippets
// arrive with HTML entities escaped and are unescaped here. The body is
// only decoded when the caller asked for it, so records produced by
// metadata fetches keep Body empty.
func parseEmail(w wireMessage, withBody bool) Email {
	e := Email{
		ID:       w.ID,
		ThreadID: w.ThreadID,
		Snippet:  html.UnescapeString(w.Snippet),
		Labels:   w.LabelIDs,
	}
	if w.Payload != nil {
		e.Header = parseHeader(w.Payload.Headers)
		if withBody {
			e.Body = decodePlainTextBody(w.Payload)
		}
	}
	return e
}
