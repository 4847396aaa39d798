package instrumentation

// Exporter choices for metrics and traces.
const (
	ExporterPrometheus = "prometheus"
	ExporterStdout     = "stdout"
)

// Config controls how the provider is assembled.
type Config struct {
	// Enabled turns instrumentation on. When false the provider hands out
	// no-op recorders.
	Enabled bool

	// Exporter selects the metrics exporter: "prometheus" or "stdout".
	Exporter string

	// Tracing enables span export to stdout. Spans are always created;
	// without this they are simply never exported.
	Tracing bool

	// ServiceName and ServiceVersion identify this process in exported
	// telemetry.
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig returns a disabled configuration with sensible identity
// defaults.
func DefaultConfig() Config {
	return Config{
		Exporter:       ExporterPrometheus,
		ServiceName:    "gmailscope",
		ServiceVersion: "dev",
	}
}
