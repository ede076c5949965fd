package process

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/logger"
	"github.com/kbukum/transduce/observability"
	"github.com/kbukum/transduce/reducers"
	"github.com/kbukum/transduce/resilience"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// Parallel is the parallel driver. It splits src into partitions, reduces
// each through its own xf(rf) chain on a bounded pool of goroutines, then
// combines the partial results left to right in partition order and
// completes once.
//
// rf must combine (see transducer.CanCombine); otherwise Parallel fails
// with INCOMPATIBLE_REDUCER before reading src. Stage state is per
// partition, so stages such as Distinct or Taking hold only within one.
// The first failing partition cancels the rest and its error is returned.
func Parallel[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	src source.Iterator[A],
	opts ...Option,
) (result R, err error) {
	o := newOptions(opts)
	ctx, t := begin(ctx, "parallel", o)
	defer func() {
		err = multierr.Append(err, src.Close())
		t.end(ctx, err)
	}()

	combiner, ok := rf.(transducer.Combiner[R])
	if !ok || !transducer.CanCombine(rf) {
		return result, errors.IncompatibleReducer("parallel", "combine")
	}
	seedAcc, err := seed(o, rf)
	if err != nil {
		return result, err
	}

	parts, err := partition(ctx, src, o.policy)
	if err != nil {
		return result, err
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	t.log.Debug("partitioned input", logger.Fields("partitions", len(parts), "workers", workers))

	partials, partStats, err := reducePartitions(ctx, xf, rf, parts, workers, o.metrics)
	for _, st := range partStats {
		t.items += st.items
		t.reduced = t.reduced || st.reduced
	}
	if err != nil {
		return result, err
	}

	acc, err := combine(ctx, combiner, seedAcc, partials)
	if err != nil {
		return acc, err
	}
	return rf.Complete(acc)
}

// ParallelSlice is Parallel over a slice.
func ParallelSlice[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	items []A,
	opts ...Option,
) (R, error) {
	return Parallel(ctx, xf, rf, source.FromSlice(items), opts...)
}

// combine folds partials into acc in partition order.
func combine[R any](ctx context.Context, c transducer.Combiner[R], acc R, partials []R) (R, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanCombine)
	defer span.End()
	for _, p := range partials {
		var err error
		if acc, err = c.Combine(acc, p); err != nil {
			observability.SetSpanError(ctx, err)
			return acc, err
		}
	}
	return acc, nil
}

// partition reads all of src into consecutive partitions sized by policy.
func partition[A any](ctx context.Context, src source.Iterator[A], policy transducer.PartitionPolicy) ([][]A, error) {
	xf, err := transducer.Partitioning[[][]A, A](policy)
	if err != nil {
		return nil, err
	}
	r := xf(reducers.Appending[[]A]())
	acc, err := reduce(ctx, r, r.Init(), src, &stats{}, nil)
	if err != nil {
		return nil, err
	}
	return r.Complete(acc)
}

func reducePartitions[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	parts [][]A,
	workers int,
	metrics *observability.Metrics,
) ([]R, []stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bulkhead := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          "parallel",
		MaxConcurrent: workers,
	})
	partials := make([]R, len(parts))
	partStats := make([]stats, len(parts))

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		firstErr error
	)
	for i, part := range parts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partial, err := resilience.ExecuteWithResult(ctx, bulkhead, func() (R, error) {
				return reducePartition(ctx, i, xf, rf, part, &partStats[i], metrics)
			})
			partials[i] = partial
			if err != nil {
				failOnce.Do(func() {
					firstErr = canceled(err)
					cancel()
				})
			}
		}()
	}
	wg.Wait()
	return partials, partStats, firstErr
}

// reducePartition runs one partition through a fresh chain. Stage flushes
// run here; the terminal Complete is left for after the combine.
func reducePartition[R, A, B any](
	ctx context.Context,
	index int,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	part []A,
	st *stats,
	metrics *observability.Metrics,
) (R, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanPartition)
	defer span.End()
	span.SetAttributes(
		attribute.Int(observability.AttrPartition, index),
		attribute.Int(observability.AttrItems, len(part)),
	)
	if run := observability.RunFromContext(ctx); run != nil {
		span.SetAttributes(attribute.String(observability.AttrRunID, run.RunID))
	}

	r := xf(transducer.DeferComplete(rf))
	acc, err := reduce(ctx, r, r.Init(), source.FromSlice(part), st, nil)
	if err == nil {
		acc, err = r.Complete(acc)
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
		return acc, err
	}
	metrics.RecordPartition(ctx, len(part), time.Since(start))
	return acc, nil
}
