package gmail

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/telmaron/gmailscope/internal/api"
	"github.com/telmaron/gmailscope/internal/instrumentation"
	"github.com/telmaron/gmailscope/internal/logging"
)

// defaultPageSize is the maxResults sent with list calls.
const defaultPageSize = "20"

// metadataHeaders is the header allow-list requested by metadata fetches.
var metadataHeaders = []string{"Date", "From", "To", "Cc", "Reply-To", "Subject", "Message-ID"}

// Cache keys for session-scoped values.
const (
	cacheKeyUsersAddress = "usersAddress"
	cacheKeyLabels       = "labels"
)

// Client is the facade over the Gmail API: list/get/modify/send/thread
// operations plus the session caches and cancellation state.
//
// Every operation takes the caller's context; Cancel additionally aborts
// all in-flight and future calls on this client until a new client is
// created. Methods are safe for concurrent use.
type Client struct {
	cfg     *api.Config
	tr      api.Transport
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer

	session    context.Context
	cancelFn   context.CancelFunc
	cancelOnce sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithTransport substitutes the transport, mainly for tests.
func WithTransport(t api.Transport) Option {
	return func(c *Client) { c.tr = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client over cfg. Without options it uses the production
// HTTP transport and the default logger.
func New(cfg *api.Config, opts ...Option) *Client {
	session, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg:      cfg,
		logger:   slog.Default(),
		tracer:   otel.Tracer("gmailscope/gmail"),
		session:  session,
		cancelFn: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tr == nil {
		c.tr = api.NewHTTPTransport(cfg, c.logger)
	}
	return c
}

// Config returns the session configuration this client operates on.
func (c *Client) Config() *api.Config {
	return c.cfg
}

// Cancel aborts any in-flight call and short-circuits all future calls on
// this client. Safe to call from any goroutine, any number of times.
func (c *Client) Cancel() {
	c.cancelOnce.Do(c.cancelFn)
}

// opContext derives a per-call context that is cancelled when either the
// caller's context or the client session is cancelled.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.session, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// finish records telemetry for one completed operation.
func (c *Client) finish(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	c.metrics.RecordOperation(ctx, op, err, elapsed)
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	c.logger.Debug("operation finished",
		logging.Operation(op),
		logging.Status(status),
		logging.Duration(elapsed),
		logging.Err(err))
}

// listParams builds the shared query parameters of the list endpoints.
// An empty labelID omits the label filter.
func listParams(query, labelID, pageToken string) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", defaultPageSize)
	if labelID != "" {
		params.Set("labelIds", labelID)
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	return params
}

// MessagesList returns one page of message summaries matching query,
// optionally restricted to a label. Summaries carry ids and whatever
// fields the server includes; bodies are never populated here.
func (c *Client) MessagesList(ctx context.Context, query, labelID, pageToken string) (Page[Email], error) {
	const op = "messages.list"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	data, err := c.tr.Get(ctx, []string{"users", "me", "messages"}, listParams(query, labelID, pageToken))
	if err != nil {
		c.finish(ctx, op, start, err)
		return Page[Email]{}, err
	}
	var list wireMessageList
	if err := decodeJSON(data, &list); err != nil {
		c.finish(ctx, op, start, err)
		return Page[Email]{}, err
	}

	page := Page[Email]{NextPageToken: list.NextPageToken}
	for _, w := range list.Messages {
		page.Items = append(page.Items, parseEmail(w, false))
	}
	c.finish(ctx, op, start, nil)
	return page, nil
}

// MessagesGet fetches one message. With withBody=false only the metadata
// header allow-list is requested and Body stays empty; with withBody=true
// the full MIME payload and label set are fetched and the plain-text body
// is decoded.
func (c *Client) MessagesGet(ctx context.Context, id string, withBody bool) (Email, error) {
	const op = "messages.get"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	params := url.Values{}
	if withBody {
		params.Set("format", "full")
	} else {
		params.Set("format", "metadata")
		for _, h := range metadataHeaders {
			params.Add("metadataHeaders", h)
		}
	}
	data, err := c.tr.Get(ctx, []string{"users", "me", "messages", id}, params)
	if err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	var w wireMessage
	if err := decodeJSON(data, &w); err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	c.finish(ctx, op, start, nil)
	return parseEmail(w, withBody), nil
}

// MessagesGetBatch re-fetches the given messages in full (snippets and
// bodies) with a single batch round trip. Results keep the order of the
// input; messages whose sub-response failed are dropped.
func (c *Client) MessagesGetBatch(ctx context.Context, emails []Email) ([]Email, error) {
	const op = "messages.getBatch"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	items := make([]batchItem, 0, len(emails))
	for _, e := range emails {
		items = append(items, batchItem{
			ID:  e.ID,
			URI: c.batchURI([]string{"users", "me", "messages", e.ID}, url.Values{"format": {"full"}}),
		})
	}
	parts, err := c.batchGet(ctx, op, items)
	if err != nil {
		c.finish(ctx, op, start, err)
		return nil, err
	}

	result := make([]Email, 0, len(parts))
	for _, raw := range parts {
		if raw == nil {
			continue
		}
		var w wireMessage
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		result = append(result, parseEmail(w, true))
	}
	c.finish(ctx, op, start, nil)
	return result, nil
}

// modify POSTs a label mutation and returns the updated message.
func (c *Client) modify(ctx context.Context, op, id, action string, payload any) (Email, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	var body []byte
	contentType := ""
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			c.finish(ctx, op, start, err)
			return Email{}, err
		}
		contentType = "application/json"
	}
	data, err := c.tr.Post(ctx, []string{"users", "me", "messages", id, action}, nil, contentType, body)
	if err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	var w wireMessage
	if err := decodeJSON(data, &w); err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	c.finish(ctx, op, start, nil)
	return parseEmail(w, false), nil
}

type labelMutation struct {
	AddLabelIDs    []string `json:"addLabelIds,omitempty"`
	RemoveLabelIDs []string `json:"removeLabelIds,omitempty"`
}

// MessagesSetUnread adds or removes the UNREAD label.
func (c *Client) MessagesSetUnread(ctx context.Context, id string, unread bool) (Email, error) {
	mutation := labelMutation{RemoveLabelIDs: []string{"UNREAD"}}
	if unread {
		mutation = labelMutation{AddLabelIDs: []string{"UNREAD"}}
	}
	return c.modify(ctx, "messages.setUnread", id, "modify", mutation)
}

// MessagesTrash moves a message to the trash.
func (c *Client) MessagesTrash(ctx context.Context, id string) (Email, error) {
	return c.modify(ctx, "messages.trash", id, "trash", nil)
}

// MessagesUntrash restores a message from the trash.
func (c *Client) MessagesUntrash(ctx context.Context, id string) (Email, error) {
	return c.modify(ctx, "messages.untrash", id, "untrash", nil)
}

// ThreadsList returns one page of thread ids matching query, optionally
// restricted to a label.
func (c *Client) ThreadsList(ctx context.Context, query, labelID, pageToken string) (Page[string], error) {
	const op = "threads.list"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	data, err := c.tr.Get(ctx, []string{"users", "me", "threads"}, listParams(query, labelID, pageToken))
	if err != nil {
		c.finish(ctx, op, start, err)
		return Page[string]{}, err
	}
	var list wireThreadList
	if err := decodeJSON(data, &list); err != nil {
		c.finish(ctx, op, start, err)
		return Page[string]{}, err
	}

	page := Page[string]{NextPageToken: list.NextPageToken}
	for _, t := range list.Threads {
		page.Items = append(page.Items, t.ID)
	}
	c.finish(ctx, op, start, nil)
	return page, nil
}

// ThreadsGet fetches all messages of a thread in full, in server order.
func (c *Client) ThreadsGet(ctx context.Context, id string) ([]Email, error) {
	const op = "threads.get"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	data, err := c.tr.Get(ctx, []string{"users", "me", "threads", id}, url.Values{"format": {"full"}})
	if err != nil {
		c.finish(ctx, op, start, err)
		return nil, err
	}
	var t wireThread
	if err := decodeJSON(data, &t); err != nil {
		c.finish(ctx, op, start, err)
		return nil, err
	}

	emails := make([]Email, 0, len(t.Messages))
	for _, w := range t.Messages {
		emails = append(emails, parseEmail(w, true))
	}
	c.finish(ctx, op, start, nil)
	return emails, nil
}

// ThreadsGetBatch fetches several threads in one batch round trip and
// returns their messages flattened in request order.
func (c *Client) ThreadsGetBatch(ctx context.Context, ids []string) ([]Email, error) {
	const op = "threads.getBatch"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	items := make([]batchItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, batchItem{
			ID:  id,
			URI: c.batchURI([]string{"users", "me", "threads", id}, url.Values{"format": {"full"}}),
		})
	}
	parts, err := c.batchGet(ctx, op, items)
	if err != nil {
		c.finish(ctx, op, start, err)
		return nil, err
	}

	var emails []Email
	for _, raw := range parts {
		if raw == nil {
			continue
		}
		var t wireThread
		if err := json.Unmarshal(raw, &t); err != nil {
			continue
		}
		for _, w := range t.Messages {
			emails = append(emails, parseEmail(w, true))
		}
	}
	c.finish(ctx, op, start, nil)
	return emails, nil
}

// sendEnvelope is the JSON wrapper the send endpoint expects.
type sendEnvelope struct {
	Raw      string `json:"raw"`
	ThreadID string `json:"threadId,omitempty"`
}

// SendMessage composes an RFC822 message and sends it. replyToID sets the
// threading headers when replying; threadID attaches the message to an
// existing conversation. When the user's own address is not known the
// From header is omitted and the server fills it in.
func (c *Client) SendMessage(ctx context.Context, to Contact, subject, body, fromName, replyToID, threadID string) (Email, error) {
	const op = "messages.send"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	// Best effort: an unknown own-address is not an error.
	fromAddress, _ := c.usersAddress(ctx)

	raw, err := composeRaw(to, subject, body, fromName, fromAddress, replyToID, c.cfg.UserAgent)
	if err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	payload, err := json.Marshal(sendEnvelope{Raw: raw, ThreadID: threadID})
	if err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}

	data, err := c.tr.Post(ctx, []string{"users", "me", "messages", "send"}, nil, "application/json", payload)
	if err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	var w wireMessage
	if err := decodeJSON(data, &w); err != nil {
		c.finish(ctx, op, start, err)
		return Email{}, err
	}
	c.finish(ctx, op, start, nil)
	return parseEmail(w, false), nil
}

// UsersAddress returns the authenticated user's own email address,
// fetched once per session and cached.
func (c *Client) UsersAddress(ctx context.Context) (string, error) {
	const op = "users.address"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	address, err := c.usersAddress(ctx)
	c.finish(ctx, op, start, err)
	return address, err
}

func (c *Client) usersAddress(ctx context.Context) (string, error) {
	return api.Memo(c.cfg.Cache, cacheKeyUsersAddress, func() (string, error) {
		data, err := c.tr.Get(ctx, []string{"users", "me", "profile"}, nil)
		if err != nil {
			return "", err
		}
		var profile wireProfile
		if err := decodeJSON(data, &profile); err != nil {
			return "", err
		}
		return profile.EmailAddress, nil
	})
}

// Labels returns the user-visible labels sorted case-insensitively by
// display name. The list is fetched once per session and cached; repeat
// calls return the identical sequence.
func (c *Client) Labels(ctx context.Context) (LabelList, error) {
	const op = "labels.list"
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, op)
	defer span.End()
	start := time.Now()

	labels, err := api.Memo(c.cfg.Cache, cacheKeyLabels, func() (LabelList, error) {
		data, err := c.tr.Get(ctx, []string{"users", "me", "labels"}, nil)
		if err != nil {
			return nil, err
		}
		var list wireLabelList
		if err := decodeJSON(data, &list); err != nil {
			return nil, err
		}
		var labels LabelList
		for _, l := range list.Labels {
			if l.LabelListVisibility == "labelHide" {
				continue
			}
			labels = append(labels, Label{ID: l.ID, Name: l.Name})
		}
		slices.SortStableFunc(labels, func(a, b Label) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
		return labels, nil
	})
	c.finish(ctx, op, start, err)
	return labels, err
}

// batchURI renders the host-relative URI of one batch sub-request.
func (c *Client) batchURI(path []string, query url.Values) string {
	prefix := ""
	if u, err := url.Parse(c.cfg.APIRoot); err == nil {
		prefix = strings.TrimSuffix(u.Path, "/")
	}
	var b strings.Builder
	b.WriteString(prefix)
	for _, seg := range path {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

// batchGet performs one multipart batch round trip and returns the
// per-item JSON payloads, aligned with the request order.
func (c *Client) batchGet(ctx context.Context, op string, items []batchItem) ([]json.RawMessage, error) {
	if len(items) == 0 {
		return nil, nil
	}
	boundary := newBoundary()
	body := buildBatchBody(boundary, items)
	c.metrics.RecordBatchParts(ctx, op, len(items))

	data, err := c.tr.PostRaw(ctx, c.cfg.BatchRoot, "multipart/mixed; boundary="+boundary, body)
	if err != nil {
		return nil, err
	}
	return parseBatchResponse(data, len(items))
}
