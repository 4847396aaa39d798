// Package logging provides structured logging helpers shared across the
// library, built on the standard library's slog.
//
// It centralizes attribute naming (operation, status, error, duration) and
// sanitization of sensitive values: bearer tokens are never logged, and
// user addresses are hashed so log lines can be correlated without
// exposing PII.
package logging
