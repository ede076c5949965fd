package process

import (
	"context"
	"sync"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/reducers"
	"github.com/kbukum/transduce/sink"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// State is where a Reactive is in its lifecycle.
type State int

const (
	// AwaitingItem accepts Send.
	AwaitingItem State = iota
	// Terminated means the reduction ended itself, by early termination or
	// a failed step.
	Terminated
	// Closed means Close was called.
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingItem:
		return "awaiting item"
	case Terminated:
		return "terminated"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Reactive is the push driver. Each Send performs one step and forwards
// whatever the pipeline emits to the target sink. When the pipeline ends
// the run, or the target answers Stop, the reduction completes and the
// target is closed right away; otherwise that happens on Close. A failed
// step terminates the run without completing it and leaves target open.
//
// Reactive is itself a sink.Sink, so reactives chain. It is safe for use
// by one producer at a time; calls are serialised.
type Reactive[A, B any] struct {
	mu    sync.Mutex
	ctx   context.Context
	r     transducer.Reducer[sink.Sink[B], A]
	acc   sink.Sink[B]
	state State
	t     *tracker
}

// NewReactive builds a push driver feeding target.
func NewReactive[A, B any](
	ctx context.Context,
	xf transducer.Transducer[sink.Sink[B], A, B],
	target sink.Sink[B],
	opts ...Option,
) *Reactive[A, B] {
	o := newOptions(opts)
	ctx, t := begin(ctx, "reactive", o)
	return &Reactive[A, B]{
		ctx: ctx,
		r:   xf(reducers.Sending[B]()),
		acc: target,
		t:   t,
	}
}

// Send steps item through the pipeline. It answers Stop once the run has
// ended. Sending after the run ended or after Close is a
// PROTOCOL_VIOLATION.
func (rx *Reactive[A, B]) Send(item A) (sink.Ack, error) {
	rx.mu.Lock()
	defer rx.mu.Unlock()

	if rx.state != AwaitingItem {
		return sink.Stop, errors.ProtocolViolation("reactive", "send while "+rx.state.String())
	}
	rx.t.items++
	res, err := rx.r.Step(rx.acc, item)
	if err != nil {
		rx.state = Terminated
		rx.t.end(rx.ctx, err)
		return sink.Stop, err
	}
	rx.acc = res.Value()
	if res.IsReduced() {
		rx.t.reduced = true
		rx.state = Terminated
		return sink.Stop, rx.complete()
	}
	return sink.Accept, nil
}

// Close completes the reduction if it is still running and closes the
// target. It is idempotent.
func (rx *Reactive[A, B]) Close() error {
	rx.mu.Lock()
	defer rx.mu.Unlock()

	prev := rx.state
	rx.state = Closed
	if prev != AwaitingItem {
		return nil
	}
	return rx.complete()
}

// State reports the current lifecycle state.
func (rx *Reactive[A, B]) State() State {
	rx.mu.Lock()
	defer rx.mu.Unlock()
	return rx.state
}

func (rx *Reactive[A, B]) complete() error {
	acc, err := rx.r.Complete(rx.acc)
	if acc != nil {
		rx.acc = acc
	}
	rx.t.end(rx.ctx, err)
	return err
}

// abort ends tracking of a run whose source failed. The reduction is left
// incomplete.
func (rx *Reactive[A, B]) abort(err error) {
	rx.mu.Lock()
	defer rx.mu.Unlock()
	if rx.state == AwaitingItem {
		rx.state = Terminated
	}
	rx.t.end(rx.ctx, err)
}

// React pushes src through xf into target using a Reactive. It returns the
// unconsumed remainder of src when the run ended before src ran dry.
func React[A, B any](
	ctx context.Context,
	xf transducer.Transducer[sink.Sink[B], A, B],
	src source.Iterator[A],
	target sink.Sink[B],
	opts ...Option,
) (source.Iterator[A], error) {
	rx := NewReactive(ctx, xf, target, opts...)
	rest, err := source.Push(ctx, src, sink.Sink[A](rx))
	if err != nil {
		err = canceled(err)
		rx.abort(err)
		return rest, err
	}
	return rest, nil
}
