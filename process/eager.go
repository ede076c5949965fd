package process

import (
	"context"
	"runtime"

	"go.uber.org/multierr"

	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// Transduce is the eager driver. It reduces every item of src through
// xf(rf), stopping early if a stage or rf ends the run, completes once and
// returns the result. src is closed before Transduce returns.
func Transduce[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	src source.Iterator[A],
	opts ...Option,
) (R, error) {
	return run(ctx, "eager", xf, rf, src, nil, opts)
}

// TransduceSlice is Transduce over a slice.
func TransduceSlice[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	items []A,
	opts ...Option,
) (R, error) {
	return Transduce(ctx, xf, rf, source.FromSlice(items), opts...)
}

// Cooperative is the eager driver over a channel. It yields the processor
// after every step so that producers feeding ch on other goroutines keep
// pace, and gives up with CANCELED once ctx is done.
func Cooperative[R, A, B any](
	ctx context.Context,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	ch <-chan A,
	opts ...Option,
) (R, error) {
	return run(ctx, "cooperative", xf, rf, source.FromChannel(ch), runtime.Gosched, opts)
}

func run[R, A, B any](
	ctx context.Context,
	driver string,
	xf transducer.Transducer[R, A, B],
	rf transducer.Reducer[R, B],
	src source.Iterator[A],
	yield func(),
	opts []Option,
) (result R, err error) {
	o := newOptions(opts)
	ctx, t := begin(ctx, driver, o)
	defer func() {
		err = multierr.Append(err, src.Close())
		t.end(ctx, err)
	}()

	r := xf(rf)
	acc, err := seed(o, r)
	if err != nil {
		return acc, err
	}
	acc, err = reduce(ctx, r, acc, src, &t.stats, yield)
	if err != nil {
		return acc, err
	}
	return r.Complete(acc)
}
