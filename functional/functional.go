// Package functional provides function composition helpers used to build
// stage arguments and transducer chains.
package functional

import "github.com/kbukum/transduce/errors"

// Compose returns the right-to-left composition of fs:
// Compose(f, g, h)(x) == f(g(h(x))). A single function is returned as is.
// Composing zero functions is an INVALID_ARGUMENT error.
func Compose[T any](fs ...func(T) T) (func(T) T, error) {
	switch len(fs) {
	case 0:
		return nil, errors.InvalidArgument("fs", "compose requires at least one function")
	case 1:
		return fs[0], nil
	}
	return func(x T) T {
		for i := len(fs) - 1; i >= 0; i-- {
			x = fs[i](x)
		}
		return x
	}, nil
}

// ComposeVariadic composes unary functions fs over a rightmost head that
// accepts any number of arguments:
// ComposeVariadic(head, f, g)(a, b) == f(g(head(a, b))).
func ComposeVariadic[A, T any](head func(...A) T, fs ...func(T) T) func(...A) T {
	return func(args ...A) T {
		x := head(args...)
		for i := len(fs) - 1; i >= 0; i-- {
			x = fs[i](x)
		}
		return x
	}
}

// Comp composes two functions of differing types: Comp(f, g)(x) == f(g(x)).
func Comp[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return func(x A) C { return f(g(x)) }
}

// Identity returns its argument.
func Identity[T any](x T) T { return x }

// True is a predicate that accepts everything.
func True[T any](T) bool { return true }

// False is a predicate that rejects everything.
func False[T any](T) bool { return false }

// Not negates a predicate.
func Not[T any](pred func(T) bool) func(T) bool {
	return func(x T) bool { return !pred(x) }
}
