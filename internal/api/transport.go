package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/telmaron/gmailscope/internal/logging"
)

// Transport issues single authenticated HTTP calls against the API. The
// gmail client depends on this interface rather than on a concrete HTTP
// stack so tests can substitute a fake.
type Transport interface {
	// Get performs a GET against APIRoot joined with the path segments.
	Get(ctx context.Context, path []string, query url.Values) ([]byte, error)

	// Post performs a POST against APIRoot joined with the path segments.
	Post(ctx context.Context, path []string, query url.Values, contentType string, body []byte) ([]byte, error)

	// PostRaw performs a POST against an absolute URL. Used for the batch
	// endpoint, which is not nested under APIRoot.
	PostRaw(ctx context.Context, rawURL, contentType string, body []byte) ([]byte, error)
}

// HTTPTransport is the production Transport on top of net/http.
type HTTPTransport struct {
	cfg    *Config
	client *http.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// readChunkSize bounds how much is read between cancellation checks, so a
// Cancel during a large transfer aborts promptly.
const readChunkSize = 32 << 10

// NewHTTPTransport returns a transport bound to cfg. A nil logger falls
// back to slog.Default.
func NewHTTPTransport(cfg *Config, logger *slog.Logger) *HTTPTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPTransport{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
		tracer: otel.Tracer("gmailscope/api"),
	}
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, path []string, query url.Values) ([]byte, error) {
	return t.do(ctx, http.MethodGet, t.buildURL(path, query), "", nil)
}

// Post implements Transport.
func (t *HTTPTransport) Post(ctx context.Context, path []string, query url.Values, contentType string, body []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPost, t.buildURL(path, query), contentType, body)
}

// PostRaw implements Transport.
func (t *HTTPTransport) PostRaw(ctx context.Context, rawURL, contentType string, body []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPost, rawURL, contentType, body)
}

func (t *HTTPTransport) buildURL(path []string, query url.Values) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(t.cfg.APIRoot, "/"))
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

func (t *HTTPTransport) do(ctx context.Context, method, rawURL, contentType string, body []byte) ([]byte, error) {
	if !t.cfg.Authenticated() {
		return nil, ErrUnauthenticated
	}

	ctx, span := t.tracer.Start(ctx, "api.request", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("url.full", rawURL),
	))
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.AccessToken())
	req.Header.Set("User-Agent", t.cfg.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, ErrCancelled
		}
		span.SetStatus(codes.Error, err.Error())
		t.logger.Warn("request failed",
			logging.Operation(method),
			slog.String("url", rawURL),
			logging.Err(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := t.readAll(ctx, resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	t.logger.Debug("request done",
		logging.Operation(method),
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		logging.Duration(time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, &DomainError{StatusCode: resp.StatusCode, Message: string(data)}
	}
	return data, nil
}

// readAll drains r in fixed-size chunks, checking the context between
// chunks. This is the cooperative cancellation point for in-flight
// transfers.
func (t *HTTPTransport) readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrCancelled
			}
			return nil, &NetworkError{Err: err}
		}
	}
}
