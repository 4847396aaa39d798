// Package api provides the low-level HTTP layer for talking to the Gmail
// REST API: session configuration, the authenticated transport, the typed
// error kinds every caller classifies against, and a small get-or-compute
// cache for session-scoped values.
//
// The transport is deliberately dumb: it builds a URL from the configured
// API root, attaches the bearer token and user agent, performs a single
// GET or POST and hands back the raw response bytes. All Gmail semantics
// (wire shapes, batching, MIME handling) live in the gmail package, which
// depends on the Transport interface so tests can swap in a fake.
//
// Error contract:
//
//   - ErrUnauthenticated: no access token configured; returned before any
//     network I/O happens.
//   - *DomainError: the server answered with a non-2xx status; the response
//     body carries the server-side message.
//   - *NetworkError: DNS/TLS/connect/timeout faults. These are never
//     swallowed; an empty result and a failed call are distinguishable.
//   - ErrCancelled: the request context was cancelled mid-transfer.
package api
