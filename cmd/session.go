package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telmaron/gmailscope/internal/api"
	"github.com/telmaron/gmailscope/internal/creds"
	"github.com/telmaron/gmailscope/internal/gmail"
	"github.com/telmaron/gmailscope/internal/instrumentation"
)

// session bundles everything a command needs at runtime: the client, the
// signal-aware context and the teardown of the telemetry stack.
type session struct {
	client *gmail.Client
	ctx    context.Context

	cancelSignals context.CancelFunc
	provider      *instrumentation.Provider
	metricsSrv    *http.Server
}

// newSession wires up logging, credentials, instrumentation and the Gmail
// client from the persistent flags. An interrupt cancels the client, which
// aborts any in-flight transfer.
func newSession() (*session, error) {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := api.NewConfig()
	if flagAPIRoot != "" {
		cfg.APIRoot = flagAPIRoot
	}
	if flagBatchRoot != "" {
		cfg.BatchRoot = flagBatchRoot
	}
	if flagUserAgent != "" {
		cfg.UserAgent = flagUserAgent
	}

	ctx, cancelSignals := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)

	var provider creds.Provider = creds.EnvProvider{}
	if flagToken != "" {
		provider = &creds.StaticProvider{Token: flagToken}
	}
	if err := creds.Apply(ctx, provider, cfg); err != nil {
		cancelSignals()
		return nil, fmt.Errorf("no credentials: pass --token or set %s: %w", creds.EnvToken, err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.Enabled = flagMetricsAddr != "" || flagTrace
	instrConfig.Tracing = flagTrace
	instrConfig.ServiceVersion = version

	instrProvider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		cancelSignals()
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	s := &session{
		ctx:           ctx,
		cancelSignals: cancelSignals,
		provider:      instrProvider,
	}

	if flagMetricsAddr != "" && instrProvider.Enabled() {
		if handler := instrProvider.MetricsHandler(); handler != nil {
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			s.metricsSrv = &http.Server{Addr: flagMetricsAddr, Handler: mux}
			go func() {
				if err := s.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Warn("metrics server failed", slog.String("error", err.Error()))
				}
			}()
		}
	}

	s.client = gmail.New(cfg,
		gmail.WithLogger(logger),
		gmail.WithMetrics(instrProvider.Metrics()))

	// An interrupt aborts the whole client session, not just the context of
	// the call currently running.
	context.AfterFunc(ctx, s.client.Cancel)

	return s, nil
}

func (s *session) close() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.metricsSrv != nil {
		if err := s.metricsSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", slog.String("error", err.Error()))
		}
	}
	if err := s.provider.Shutdown(shutdownCtx); err != nil {
		slog.Warn("instrumentation shutdown", slog.String("error", err.Error()))
	}
	s.cancelSignals()
}
