// Package instrumentation wires OpenTelemetry metrics and tracing for the
// library. It exposes a Provider that owns the meter/tracer providers and
// a Metrics recorder for API operation counts and durations.
//
// Two exporters are supported: prometheus (pull, served by the CLI when a
// metrics address is configured) and stdout (for local debugging). When
// instrumentation is disabled the recorder degrades to a no-op, so call
// sites never need to branch.
package instrumentation
