package reducers

import (
	"maps"
	"slices"

	"github.com/kbukum/transduce/transducer"
)

// Appending collects items into a slice. Partial slices combine by
// concatenation.
func Appending[T any]() *transducer.Folding[[]T, T] {
	return transducer.CompletingFunc(
		func(acc []T, item T) []T { return append(acc, item) },
		func() []T { return []T{} },
	).WithCombine(concat[[]T])
}

// Extending flattens slices of items into one slice.
func Extending[T any]() *transducer.Folding[[]T, []T] {
	return transducer.CompletingFunc(
		func(acc []T, items []T) []T { return append(acc, items...) },
		func() []T { return []T{} },
	).WithCombine(concat[[]T])
}

// Conjoining collects items into a slice of type S without mutating any
// accumulator: each step returns a new S.
func Conjoining[S ~[]T, T any]() *Conjoiner[S, T] {
	return ConjoiningFrom[S](S{})
}

// ConjoiningFrom is Conjoining seeded with a copy of seed.
func ConjoiningFrom[S ~[]T, T any](seed S) *Conjoiner[S, T] {
	return &Conjoiner[S, T]{seed: seed}
}

// Conjoiner is the reducer built by Conjoining.
type Conjoiner[S ~[]T, T any] struct {
	seed S
}

func (c *Conjoiner[S, T]) Init() S {
	out := make(S, len(c.seed))
	copy(out, c.seed)
	return out
}

func (c *Conjoiner[S, T]) Step(acc S, item T) (transducer.Result[S], error) {
	out := make(S, len(acc), len(acc)+1)
	copy(out, acc)
	return transducer.Continue(append(out, item)), nil
}

func (c *Conjoiner[S, T]) Complete(acc S) (S, error) { return acc, nil }

func (c *Conjoiner[S, T]) Combine(a, b S) (S, error) {
	return concat(a, b), nil
}

// Adding collects items into a set. Partial sets combine by union.
func Adding[T comparable]() *transducer.Folding[map[T]struct{}, T] {
	return transducer.CompletingFunc(
		func(acc map[T]struct{}, item T) map[T]struct{} {
			acc[item] = struct{}{}
			return acc
		},
		func() map[T]struct{} { return make(map[T]struct{}) },
	).WithCombine(func(a, b map[T]struct{}) map[T]struct{} {
		out := make(map[T]struct{}, len(a)+len(b))
		maps.Copy(out, a)
		maps.Copy(out, b)
		return out
	})
}

// concat joins a and b into a new slice of the same type.
func concat[S ~[]E, E any](a, b S) S {
	out := slices.Concat(a, b)
	if out == nil {
		out = S{}
	}
	return out
}
