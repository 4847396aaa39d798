package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
)

// Status values recorded with each operation.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records API operation telemetry. The zero value is a usable
// no-op recorder.
type Metrics struct {
	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram
	batchPartsTotal      metric.Int64Counter
}

// NewMetrics creates a Metrics instance registered on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.apiOperationsTotal, err = meter.Int64Counter(
		"gmail_api_operations_total",
		metric.WithDescription("Total number of Gmail API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_operations_total counter: %w", err)
	}

	m.apiOperationDuration, err = meter.Float64Histogram(
		"gmail_api_operation_duration_seconds",
		metric.WithDescription("Gmail API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_api_operation_duration_seconds histogram: %w", err)
	}

	m.batchPartsTotal, err = meter.Int64Counter(
		"gmail_batch_parts_total",
		metric.WithDescription("Total number of sub-requests sent in batch calls"),
		metric.WithUnit("{part}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail_batch_parts_total counter: %w", err)
	}

	return m, nil
}

// RecordOperation records one facade operation with its outcome and
// duration.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, err error, duration time.Duration) {
	if m == nil || m.apiOperationsTotal == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.apiOperationsTotal.Add(ctx, 1, attrs)
	m.apiOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBatchParts records how many sub-requests a batch call carried.
func (m *Metrics) RecordBatchParts(ctx context.Context, operation string, parts int) {
	if m == nil || m.batchPartsTotal == nil {
		return
	}
	m.batchPartsTotal.Add(ctx, int64(parts), metric.WithAttributes(
		attribute.String(attrOperation, operation),
	))
}
