package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the inboxdigest package.
const TracerName = "github.com/teemow/inboxdigest"

// Span attribute keys for pipeline operations.
const (
	// SpanAttrStage is the pipeline stage attribute.
	SpanAttrStage = "digest.stage"

	// SpanAttrQuery is the Gmail search query attribute.
	SpanAttrQuery = "gmail.query"

	// SpanAttrEmailCount is the number of emails handled by the stage.
	SpanAttrEmailCount = "digest.email_count"

	// SpanAttrModel is the scoring model name attribute.
	SpanAttrModel = "gemini.model"
)

// StartStageSpan starts a span for a pipeline stage.
// The caller is responsible for ending the span with defer span.End().
func StartStageSpan(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrStage, stage))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "digest."+stage,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
