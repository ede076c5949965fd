package sink

import "sync"

// Ack is a sink's answer to Send.
type Ack int

const (
	// Accept means the item was taken and more may follow.
	Accept Ack = iota
	// Stop means the sink will take no further items.
	Stop
)

func (a Ack) String() string {
	switch a {
	case Accept:
		return "accept"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Sink receives items pushed to it one at a time.
type Sink[T any] interface {
	// Send delivers one item. Stop means no more items will be accepted.
	Send(item T) (Ack, error)
	// Close ends the stream. It is safe to call more than once.
	Close() error
}

// gate tracks whether a sink has been closed. Sinks embed it and check
// open before accepting an item.
type gate struct {
	mu     sync.Mutex
	closed bool
}

func (g *gate) open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.closed
}

// shut marks the gate closed and reports whether this call closed it.
func (g *gate) shut() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.closed = true
	return true
}

// Null returns a sink that discards every item.
func Null[T any]() Sink[T] {
	return &funcSink[T]{fn: func(T) (Ack, error) { return Accept, nil }}
}

// Func adapts fn into a sink. onClose, when non-nil, runs once on the first
// Close.
func Func[T any](fn func(T) (Ack, error), onClose func() error) Sink[T] {
	return &funcSink[T]{fn: fn, onClose: onClose}
}

type funcSink[T any] struct {
	gate
	fn      func(T) (Ack, error)
	onClose func() error
}

func (s *funcSink[T]) Send(item T) (Ack, error) {
	if !s.open() {
		return Stop, nil
	}
	return s.fn(item)
}

func (s *funcSink[T]) Close() error {
	if !s.shut() || s.onClose == nil {
		return nil
	}
	return s.onClose()
}
