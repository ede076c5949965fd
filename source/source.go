package source

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// FromSlice iterates over items.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

// FromFunc builds an iterator from a next function.
func FromFunc[T any](next func(ctx context.Context) (T, bool, error)) Iterator[T] {
	return &funcIter[T]{next: next}
}

type funcIter[T any] struct {
	next func(ctx context.Context) (T, bool, error)
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) { return it.next(ctx) }

func (it *funcIter[T]) Close() error { return nil }

// FromSeq adapts a range-over-func sequence. Close stops the sequence.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)
	return &seqIter[T]{next: next, stop: stop}
}

type seqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := it.next()
	return v, ok, nil
}

func (it *seqIter[T]) Close() error {
	it.stop()
	return nil
}

// Range yields start, start+1, ... up to but excluding stop.
func Range(start, stop int) Iterator[int] {
	n := start
	return FromFunc(func(context.Context) (int, bool, error) {
		if n >= stop {
			return 0, false, nil
		}
		v := n
		n++
		return v, true, nil
	})
}

// Count yields start, start+1, ... without end.
func Count(start int) Iterator[int] {
	n := start
	return FromFunc(func(context.Context) (int, bool, error) {
		v := n
		n++
		return v, true, nil
	})
}

// FromChannel reads values from ch until it is closed. A done context is
// returned as the error.
func FromChannel[T any](ch <-chan T) Iterator[T] {
	return &channelIter[T]{ch: ch}
}

type channelIter[T any] struct {
	ch <-chan T
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case v, open := <-it.ch:
		return v, open, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error { return nil }

// Collect pulls every value from it, then closes it.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	defer it.Close()
	var result []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}
