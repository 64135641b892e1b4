package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStage  = "stage"
	attrStatus = "status"
)

// Metrics provides methods for recording pipeline metrics. A nil *Metrics
// is a valid no-op recorder, so components never have to guard their calls.
type Metrics struct {
	emailsFetchedTotal  metric.Int64Counter
	emailsSkippedTotal  metric.Int64Counter
	scoreRequestsTotal  metric.Int64Counter
	scoreFallbacksTotal metric.Int64Counter
	webhookPostsTotal   metric.Int64Counter
	stageDuration       metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.emailsFetchedTotal, err = meter.Int64Counter(
		"emails_fetched_total",
		metric.WithDescription("Total number of emails fetched from Gmail"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create emails_fetched_total counter: %w", err)
	}

	m.emailsSkippedTotal, err = meter.Int64Counter(
		"emails_skipped_total",
		metric.WithDescription("Total number of emails skipped because they could not be retrieved or decoded"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create emails_skipped_total counter: %w", err)
	}

	m.scoreRequestsTotal, err = meter.Int64Counter(
		"score_requests_total",
		metric.WithDescription("Total number of model scoring requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score_requests_total counter: %w", err)
	}

	m.scoreFallbacksTotal, err = meter.Int64Counter(
		"score_fallbacks_total",
		metric.WithDescription("Total number of unparseable model responses that fell back to the neutral priority"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score_fallbacks_total counter: %w", err)
	}

	m.webhookPostsTotal, err = meter.Int64Counter(
		"webhook_posts_total",
		metric.WithDescription("Total number of Slack webhook deliveries"),
		metric.WithUnit("{post}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook_posts_total counter: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordEmailsFetched records the number of emails fetched in a run.
func (m *Metrics) RecordEmailsFetched(ctx context.Context, count int64) {
	if m == nil || m.emailsFetchedTotal == nil {
		return // Instrumentation not initialized
	}

	m.emailsFetchedTotal.Add(ctx, count)
}

// RecordEmailSkipped records one email skipped during fetching.
func (m *Metrics) RecordEmailSkipped(ctx context.Context) {
	if m == nil || m.emailsSkippedTotal == nil {
		return // Instrumentation not initialized
	}

	m.emailsSkippedTotal.Add(ctx, 1)
}

// RecordScore records a model scoring request with its result status.
// Status should be one of: "success", "error"
func (m *Metrics) RecordScore(ctx context.Context, status string) {
	if m == nil || m.scoreRequestsTotal == nil {
		return // Instrumentation not initialized
	}

	m.scoreRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}

// RecordScoreFallback records a model response that could not be parsed.
func (m *Metrics) RecordScoreFallback(ctx context.Context) {
	if m == nil || m.scoreFallbacksTotal == nil {
		return // Instrumentation not initialized
	}

	m.scoreFallbacksTotal.Add(ctx, 1)
}

// RecordWebhookPost records a Slack webhook delivery with its HTTP status code.
func (m *Metrics) RecordWebhookPost(ctx context.Context, statusCode int) {
	if m == nil || m.webhookPostsTotal == nil {
		return // Instrumentation not initialized
	}

	m.webhookPostsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	))
}

// RecordStageDuration records how long a pipeline stage took.
// Stage should be one of: "auth", "fetch", "score", "publish"
func (m *Metrics) RecordStageDuration(ctx context.Context, stage string, duration time.Duration) {
	if m == nil || m.stageDuration == nil {
		return // Instrumentation not initialized
	}

	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrStage, stage),
	))
}
