// Package instrumentation provides OpenTelemetry metrics and tracing for
// the digest pipeline.
//
// Instrumentation is opt-in: a digest run is a short-lived process, so
// telemetry is only set up when INSTRUMENTATION_ENABLED=true. Metrics are
// exported on shutdown through stdout or an OTLP collector; tracing is off
// unless TRACING_EXPORTER selects an exporter. A nil *Metrics recorder is
// a no-op, so pipeline components record unconditionally.
//
// Recorded metrics cover the four stages: emails fetched and skipped,
// scoring requests and neutral-priority fallbacks, webhook deliveries, and
// per-stage durations. Label cardinality stays bounded; sender addresses
// never appear as label values.
package instrumentation
