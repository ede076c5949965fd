package sink

import (
	"context"
	"sync"
)

// Channel returns a sink that forwards items to ch and closes ch on Close.
// Send blocks until ch takes the item; once ctx is done it answers Stop.
// Sends may run concurrently with each other and with Close: Close waits
// for sends in flight, so cancel ctx to release a blocked one.
func Channel[T any](ctx context.Context, ch chan<- T) Sink[T] {
	return &channelSink[T]{ctx: ctx, ch: ch}
}

type channelSink[T any] struct {
	mu     sync.RWMutex
	closed bool
	ctx    context.Context
	ch     chan<- T
}

func (s *channelSink[T]) Send(item T) (Ack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Stop, nil
	}
	select {
	case s.ch <- item:
		return Accept, nil
	case <-s.ctx.Done():
		return Stop, nil
	}
}

func (s *channelSink[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}
