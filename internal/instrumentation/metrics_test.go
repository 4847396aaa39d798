package instrumentation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader sdkmetric.Reader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func metricNames(rm metricdata.ResourceMetrics) []string {
	var names []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names = append(names, m.Name)
		}
	}
	return names
}

func TestRecordOperation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.RecordOperation(context.Background(), "messages.list", nil, 42*time.Millisecond)
	m.RecordOperation(context.Background(), "messages.list", errors.New("boom"), time.Millisecond)

	rm := collect(t, reader)
	names := metricNames(rm)
	assert.Contains(t, names, "gmail_api_operations_total")
	assert.Contains(t, names, "gmail_api_operation_duration_seconds")
}

func TestRecordBatchParts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.RecordBatchParts(context.Background(), "messages.getBatch", 7)

	rm := collect(t, reader)
	assert.Contains(t, metricNames(rm), "gmail_batch_parts_total")
}

func TestNoOpRecorderIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordOperation(context.Background(), "messages.get", nil, time.Second)
	m.RecordBatchParts(context.Background(), "threads.getBatch", 3)

	zero := &Metrics{}
	zero.RecordOperation(context.Background(), "messages.get", nil, time.Second)
}

func TestDisabledProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, p.Metrics())
	assert.Nil(t, p.MetricsHandler())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPrometheusProviderServesHandler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	assert.NotNil(t, p.MetricsHandler())
	assert.NotNil(t, p.Metrics())
}
