package reducers

import (
	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/sink"
	"github.com/kbukum/transduce/transducer"
)

const expectingSingle = "expecting single"

// ExpectingSingle requires exactly one item and completes to a pointer to
// it. A second item fails the step with TOO_MANY_ITEMS; completing with
// none fails with TOO_FEW_ITEMS.
func ExpectingSingle[T any]() transducer.Reducer[*T, T] {
	return single[T]{}
}

type single[T any] struct{}

func (single[T]) Init() *T { return nil }

func (single[T]) Step(acc *T, item T) (transducer.Result[*T], error) {
	if acc != nil {
		return transducer.Continue(acc), errors.TooManyItems(expectingSingle, 1)
	}
	return transducer.Continue(&item), nil
}

func (single[T]) Complete(acc *T) (*T, error) {
	if acc == nil {
		return nil, errors.TooFewItems(expectingSingle, 1, 0)
	}
	return acc, nil
}

// Sending forwards items to the sink held as the accumulator. A Stop from
// the sink ends the run; Complete closes the sink. The default seed is a
// null sink, so callers normally seed the run with their own.
func Sending[T any]() transducer.Reducer[sink.Sink[T], T] {
	return sending[T]{}
}

type sending[T any] struct{}

func (sending[T]) Init() sink.Sink[T] { return sink.Null[T]() }

func (sending[T]) Step(acc sink.Sink[T], item T) (transducer.Result[sink.Sink[T]], error) {
	ack, err := acc.Send(item)
	if err != nil {
		return transducer.Continue(acc), err
	}
	if ack == sink.Stop {
		return transducer.Reduced(acc), nil
	}
	return transducer.Continue(acc), nil
}

func (sending[T]) Complete(acc sink.Sink[T]) (sink.Sink[T], error) {
	return acc, acc.Close()
}
