package source

import (
	"context"

	"github.com/kbukum/transduce/sink"
)

// Push sends every value of it to target. When it runs dry, target is
// closed and the returned remainder is nil. When target answers Stop,
// target is closed and it is returned as the remainder, positioned after
// the last value sent.
//
// A failure reading it or sending to target is returned together with it
// as the remainder and leaves target open. Push never closes it.
func Push[T any](ctx context.Context, it Iterator[T], target sink.Sink[T]) (Iterator[T], error) {
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return it, err
		}
		if !ok {
			return nil, target.Close()
		}
		ack, err := target.Send(val)
		if err != nil {
			return it, err
		}
		if ack == sink.Stop {
			return it, target.Close()
		}
	}
}
