package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/transduce/errors"
)

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusReduced   = "reduced"
	StatusFailed    = "failed"
)

// Run tracks one reduction for tracing and metrics.
type Run struct {
	Driver    string
	RunID     string
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// NewRun creates a run record. If metrics is nil, metric recording is skipped.
func NewRun(driver, runID string, metrics *Metrics) *Run {
	return &Run{
		Driver:    driver,
		RunID:     runID,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type runKey struct{}

// WithRun stores a Run in the context.
func WithRun(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// RunFromContext retrieves the Run from context, or nil.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey{}).(*Run); ok {
		return r
	}
	return nil
}

// Start opens the run span and marks the run active. The returned context
// carries both the span and the Run.
func (r *Run) Start(ctx context.Context) context.Context {
	ctx, r.span = StartSpan(ctx, SpanRun)
	r.span.SetAttributes(
		attribute.String(AttrDriver, r.Driver),
		attribute.String(AttrRunID, r.RunID),
	)
	r.Metrics.RecordRunStart(ctx, r.Driver)
	return WithRun(ctx, r)
}

// End closes the span and records the outcome. items counts source items
// stepped; reduced reports early termination by a stage.
func (r *Run) End(ctx context.Context, items int, reduced bool, err error) {
	duration := time.Since(r.StartTime)
	status := StatusCompleted
	switch {
	case err != nil:
		status = StatusFailed
	case reduced:
		status = StatusReduced
	}

	if r.span != nil {
		if err != nil {
			r.span.RecordError(err)
			r.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		}
		r.span.SetAttributes(
			attribute.String(AttrStatus, status),
			attribute.Int(AttrItems, items),
			attribute.Bool(AttrReduced, reduced),
			attribute.Int64(AttrDurationMs, duration.Milliseconds()),
		)
		r.span.End()
	}

	r.Metrics.RecordRunEnd(ctx, r.Driver, status, items, reduced, duration)
	if err != nil {
		r.Metrics.RecordError(ctx, string(errors.Wrap(err).Code), r.Driver)
	}
}

// Duration returns the elapsed time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartTime)
}
