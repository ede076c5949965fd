package reducers

import (
	"golang.org/x/exp/constraints"

	"github.com/kbukum/transduce/transducer"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Completing lifts a binary function and its identity into a reducer. Each
// run starts from its own copy of identity.
func Completing[R, T any](fn func(R, T) R, identity R) *transducer.Folding[R, T] {
	return transducer.Completing(fn, identity)
}

// Summing adds items, starting from zero.
func Summing[N Number]() *transducer.Folding[N, N] {
	add := func(a, b N) N { return a + b }
	return transducer.Completing(add, 0).WithCombine(add)
}

// Multiplying multiplies items, starting from one.
func Multiplying[N Number]() *transducer.Folding[N, N] {
	mul := func(a, b N) N { return a * b }
	return transducer.Completing(mul, 1).WithCombine(mul)
}

// Effecting calls fn on every item and keeps no result.
func Effecting[T any](fn func(T)) *transducer.Folding[struct{}, T] {
	return transducer.Completing(func(acc struct{}, item T) struct{} {
		fn(item)
		return acc
	}, struct{}{})
}
