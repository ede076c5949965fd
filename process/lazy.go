package process

import (
	"context"

	"go.uber.org/multierr"

	"github.com/kbukum/transduce/reducers"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// Lazy is the lazy driver. The returned iterator pulls src only as far as
// needed to produce its next item and hands output items out one at a
// time. It can be traversed once.
//
// Closing the iterator before it is exhausted still completes the
// reduction, discarding whatever it would have emitted, and closes src.
func Lazy[A, B any](
	ctx context.Context,
	xf transducer.Transducer[[]B, A, B],
	src source.Iterator[A],
	opts ...Option,
) source.Iterator[B] {
	o := newOptions(opts)
	ctx, t := begin(ctx, "lazy", o)
	return &lazyIter[A, B]{
		ctx: ctx,
		r:   xf(reducers.Appending[B]()),
		src: src,
		t:   t,
	}
}

type lazyIter[A, B any] struct {
	ctx     context.Context
	r       transducer.Reducer[[]B, A]
	src     source.Iterator[A]
	t       *tracker
	pending []B
	done    bool
	failed  error
	closed  bool
}

func (it *lazyIter[A, B]) Next(ctx context.Context) (B, bool, error) {
	var zero B
	for {
		if len(it.pending) > 0 {
			v := it.pending[0]
			it.pending[0] = zero
			it.pending = it.pending[1:]
			return v, true, nil
		}
		if it.failed != nil {
			return zero, false, it.failed
		}
		if it.done || it.closed {
			return zero, false, nil
		}
		if err := it.advance(ctx); err != nil {
			return zero, false, err
		}
	}
}

// advance pulls one source item through the reduction, completing it when
// the source runs dry or a stage ends the run.
func (it *lazyIter[A, B]) advance(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return it.fail(canceled(err))
	}
	item, ok, err := it.src.Next(ctx)
	if err != nil {
		return it.fail(canceled(err))
	}
	if !ok {
		return it.complete()
	}
	it.t.items++
	res, err := it.r.Step(it.pending[:0], item)
	if err != nil {
		return it.fail(err)
	}
	it.pending = res.Value()
	if res.IsReduced() {
		it.t.reduced = true
		return it.complete()
	}
	return nil
}

func (it *lazyIter[A, B]) complete() error {
	out, err := it.r.Complete(it.pending)
	if err != nil {
		return it.fail(err)
	}
	it.pending = out
	it.done = true
	it.t.end(it.ctx, nil)
	return nil
}

func (it *lazyIter[A, B]) fail(err error) error {
	it.failed = err
	it.pending = nil
	it.t.end(it.ctx, err)
	return err
}

func (it *lazyIter[A, B]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	var err error
	if !it.done && it.failed == nil {
		err = it.complete()
	}
	it.pending = nil
	return multierr.Append(err, it.src.Close())
}
