// Package observability exports OpenTelemetry metrics and traces for
// transduction runs.
//
// Drivers open a Run per reduction: it starts a span, tracks the run as
// active, and on End records the item count, whether a stage terminated the
// run early, the duration and the outcome. The parallel driver additionally
// records one span and one size sample per partition. A nil *Metrics turns
// metric recording off; spans fall back to the global (noop by default)
// tracer provider.
//
// # Usage
//
//	mp, err := observability.InitMeter(ctx, &meterCfg)
//	metrics, err := observability.NewMetrics(observability.Meter("transduce"))
//	out, err := process.Parallel(ctx, xf, rf, items, process.WithMetrics(metrics))
package observability
