package source

import "context"

// item carries a value or error through a channel.
type item[T any] struct {
	val T
	err error
}

// Buffered reads ahead from src on its own goroutine, holding up to size
// values in a channel. This decouples the production rate from the
// consumption rate. Close stops the reader and then closes src.
func Buffered[T any](ctx context.Context, src Iterator[T], size int) Iterator[T] {
	if size <= 0 {
		size = 1
	}
	bufCtx, cancel := context.WithCancel(ctx)
	ch := make(chan item[T], size)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(ch)
		for {
			val, ok, err := src.Next(bufCtx)
			if err != nil {
				select {
				case ch <- item[T]{err: err}:
				case <-bufCtx.Done():
				}
				return
			}
			if !ok {
				return
			}
			select {
			case ch <- item[T]{val: val}:
			case <-bufCtx.Done():
				return
			}
		}
	}()

	return &bufferedIter[T]{ch: ch, cancel: cancel, done: done, src: src}
}

type bufferedIter[T any] struct {
	ch     <-chan item[T]
	cancel context.CancelFunc
	done   <-chan struct{}
	src    Iterator[T]
}

func (it *bufferedIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case r, open := <-it.ch:
		if !open {
			var zero T
			return zero, false, nil
		}
		return r.val, r.err == nil, r.err
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *bufferedIter[T]) Close() error {
	it.cancel()
	<-it.done
	return it.src.Close()
}
