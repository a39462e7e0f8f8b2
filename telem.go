package escorex

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/escorex/escorex",
	trace.WithInstrumentationVersion(buildVersion))

func startDispatchSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "escorex.dispatch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
		))
}

func endDispatchSpan(span trace.Span, retries int, err error) {
	span.SetAttributes(attribute.Int("escorex.retries", retries))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
