package process

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/logger"
	"github.com/kbukum/transduce/observability"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// stats counts what a reduction consumed.
type stats struct {
	items   int
	reduced bool
}

// tracker follows one run: its span, metrics and log lines.
type tracker struct {
	stats
	obs   *observability.Run
	log   *logger.Logger
	ended bool
}

func begin(ctx context.Context, driver string, o *options) (context.Context, *tracker) {
	id := o.runID
	if id == "" {
		id = uuid.NewString()
	}
	run := observability.NewRun(driver, id, o.metrics)
	ctx = logger.ContextWithRunID(run.Start(ctx), id)
	log := o.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldDriver, driver))
	log.Debug("run started")
	return ctx, &tracker{obs: run, log: log}
}

// end records the outcome. Only the first call counts.
func (t *tracker) end(ctx context.Context, err error) {
	if t.ended {
		return
	}
	t.ended = true
	t.obs.End(ctx, t.items, t.reduced, err)

	fields := logger.Fields(
		logger.FieldItems, t.items,
		logger.FieldReduced, t.reduced,
		logger.FieldDuration, t.obs.Duration().Milliseconds(),
	)
	if err != nil {
		t.log.WithError(err).Warn("run failed", fields)
		return
	}
	t.log.Debug("run finished", fields)
}

// reduce steps items pulled from src into r until src runs dry or r
// reduces. yield, when set, runs after every step that did not end the
// run.
func reduce[R, A any](ctx context.Context, r transducer.Reducer[R, A], acc R, src source.Iterator[A], st *stats, yield func()) (R, error) {
	for {
		if err := ctx.Err(); err != nil {
			return acc, canceled(err)
		}
		item, ok, err := src.Next(ctx)
		if err != nil {
			return acc, canceled(err)
		}
		if !ok {
			return acc, nil
		}
		st.items++
		res, err := r.Step(acc, item)
		if err != nil {
			return res.Value(), err
		}
		acc = res.Value()
		if res.IsReduced() {
			st.reduced = true
			return acc, nil
		}
		if yield != nil {
			yield()
		}
	}
}

// canceled reports context errors as CANCELED and passes others through.
func canceled(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		if errors.Is(err, errors.ErrCodeCanceled) {
			return err
		}
		return errors.Canceled("reduction", err)
	}
	return err
}
