package transducer

import (
	"github.com/kbukum/transduce/errors"
)

// Result is the value returned by Step: an accumulator, optionally marked
// as reduced to end the run.
type Result[R any] struct {
	value   R
	reduced bool
}

// Continue wraps acc as a plain, non-terminating result.
func Continue[R any](acc R) Result[R] {
	return Result[R]{value: acc}
}

// Reduced wraps acc as a result that terminates the reduction.
func Reduced[R any](acc R) Result[R] {
	return Result[R]{value: acc, reduced: true}
}

// EnsureReduced marks r as reduced. It is idempotent.
func EnsureReduced[R any](r Result[R]) Result[R] {
	r.reduced = true
	return r
}

// Unreduced clears the reduced mark.
func Unreduced[R any](r Result[R]) Result[R] {
	r.reduced = false
	return r
}

// Value returns the wrapped accumulator.
func (r Result[R]) Value() R { return r.value }

// IsReduced reports whether the reduction should stop.
func (r Result[R]) IsReduced() bool { return r.reduced }

// Reducer folds items of type T into an accumulator of type R.
//
// Init returns a fresh seed on every call. Complete runs exactly once per
// reduction, after the source is exhausted or a Step returned a reduced
// result, and also when Step never ran.
type Reducer[R, T any] interface {
	Init() R
	Step(acc R, item T) (Result[R], error)
	Complete(acc R) (R, error)
}

// Combiner merges two accumulators. The parallel driver requires it of the
// terminal reducer.
type Combiner[R any] interface {
	Combine(a, b R) (R, error)
}

// Transducer transforms a reducer of B into a reducer of A. Every call
// builds fresh stage state.
type Transducer[R, A, B any] func(Reducer[R, B]) Reducer[R, A]

// Identity returns the pass-through transducer.
func Identity[R, T any]() Transducer[R, T, T] {
	return func(next Reducer[R, T]) Reducer[R, T] { return next }
}

// Compose stacks same-typed transducers. Data flows left to right:
// Compose(a, b)(rf) == a(b(rf)). Zero transducers yield Identity.
func Compose[R, T any](ts ...Transducer[R, T, T]) Transducer[R, T, T] {
	return func(next Reducer[R, T]) Reducer[R, T] {
		for i := len(ts) - 1; i >= 0; i-- {
			next = ts[i](next)
		}
		return next
	}
}

// Chain joins two transducers whose element types differ.
func Chain[R, A, B, C any](first Transducer[R, A, B], second Transducer[R, B, C]) Transducer[R, A, C] {
	return func(next Reducer[R, C]) Reducer[R, A] {
		return first(second(next))
	}
}

// Chain3 joins three transducers whose element types differ.
func Chain3[R, A, B, C, D any](first Transducer[R, A, B], second Transducer[R, B, C], third Transducer[R, C, D]) Transducer[R, A, D] {
	return Chain(first, Chain(second, third))
}

// Must unwraps a stage constructor result, panicking on a configuration
// error. Use it where arguments are constants.
func Must[R, A, B any](t Transducer[R, A, B], err error) Transducer[R, A, B] {
	if err != nil {
		panic(err)
	}
	return t
}

// CanCombine reports whether r, or the terminal reducer a stage chain ends
// in, supports Combine.
func CanCombine[R, T any](r Reducer[R, T]) bool {
	if c, ok := r.(interface{ CanCombine() bool }); ok {
		return c.CanCombine()
	}
	_, ok := r.(Combiner[R])
	return ok
}

// StepFunc is a step-only reduction function.
type StepFunc[R, T any] func(acc R, item T) (Result[R], error)

// FromStep lifts a step function and a seed constructor into a Reducer whose
// Complete is the identity.
func FromStep[R, T any](init func() R, step StepFunc[R, T]) Reducer[R, T] {
	return &funcReducer[R, T]{init: init, step: step}
}

type funcReducer[R, T any] struct {
	init func() R
	step StepFunc[R, T]
}

func (f *funcReducer[R, T]) Init() R { return f.init() }

func (f *funcReducer[R, T]) Step(acc R, item T) (Result[R], error) { return f.step(acc, item) }

func (f *funcReducer[R, T]) Complete(acc R) (R, error) { return acc, nil }

// Folding is a Reducer built from a plain binary function and its identity.
// It combines when constructed with a combine function.
type Folding[R, T any] struct {
	fn       func(R, T) R
	identity func() R
	combine  func(R, R) R
}

// Completing lifts fn and its identity value into a full Reducer. Every
// Init returns a fresh copy of identity: slices and maps are cloned, so
// runs and parallel partitions never share a seed. Values reachable only
// through pointers are not copied; use CompletingFunc for those.
func Completing[R, T any](fn func(R, T) R, identity R) *Folding[R, T] {
	return &Folding[R, T]{fn: fn, identity: func() R { return fresh(identity) }}
}

// CompletingFunc is Completing with a seed constructor.
func CompletingFunc[R, T any](fn func(R, T) R, identity func() R) *Folding[R, T] {
	return &Folding[R, T]{fn: fn, identity: identity}
}

// WithCombine returns a copy of f that merges partial results with combine.
func (f *Folding[R, T]) WithCombine(combine func(R, R) R) *Folding[R, T] {
	cp := *f
	cp.combine = combine
	return &cp
}

func (f *Folding[R, T]) Init() R { return f.identity() }

func (f *Folding[R, T]) Step(acc R, item T) (Result[R], error) {
	return Continue(f.fn(acc, item)), nil
}

func (f *Folding[R, T]) Complete(acc R) (R, error) { return acc, nil }

func (f *Folding[R, T]) CanCombine() bool { return f.combine != nil }

func (f *Folding[R, T]) Combine(a, b R) (R, error) {
	if f.combine == nil {
		return a, errors.IncompatibleReducer("parallel", "combine")
	}
	return f.combine(a, b), nil
}

// DeferComplete wraps r so that Complete returns its argument untouched.
// The parallel driver completes each partition through it and runs the
// real Complete once on the combined result.
func DeferComplete[R, T any](r Reducer[R, T]) Reducer[R, T] {
	return deferred[R, T]{r}
}

type deferred[R, T any] struct {
	Reducer[R, T]
}

func (d deferred[R, T]) Complete(acc R) (R, error) { return acc, nil }

func (d deferred[R, T]) CanCombine() bool { return CanCombine(d.Reducer) }
