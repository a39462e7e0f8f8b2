package escorex

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("github.com/escorex/escorex",
		metric.WithInstrumentationVersion(buildVersion))
)

var (
	// dispatchAttempts tracks the number of attempts handed to the HTTP
	// client, including retries.
	dispatchAttempts, _ = meter.Int64Counter("escorex.dispatch_attempts")

	// dispatchRetries tracks attempts beyond the first for a single
	// dispatch call.
	dispatchRetries, _ = meter.Int64Counter("escorex.dispatch_retries")

	// dispatchFailures tracks dispatch calls that surfaced an error to
	// the caller.
	dispatchFailures, _ = meter.Int64Counter("escorex.dispatch_failures")
)
