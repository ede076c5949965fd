package transducer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func appending[B any]() *Folding[[]B, B] {
	return CompletingFunc(
		func(acc []B, b B) []B { return append(acc, b) },
		func() []B { return []B{} },
	).WithCombine(func(a, b []B) []B { return append(append([]B{}, a...), b...) })
}

// reduce drives items through xf(rf) the way the eager driver does.
func reduce[R, A, B any](xf Transducer[R, A, B], rf Reducer[R, B], items []A) (R, error) {
	r := xf(rf)
	acc := r.Init()
	for _, item := range items {
		res, err := r.Step(acc, item)
		if err != nil {
			return acc, err
		}
		acc = res.Value()
		if res.IsReduced() {
			break
		}
	}
	return r.Complete(acc)
}

func collect[A, B any](t *testing.T, xf Transducer[[]B, A, B], items []A) []B {
	t.Helper()
	out, err := reduce(xf, Reducer[[]B, B](appending[B]()), items)
	require.NoError(t, err)
	return out
}

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// tally is a terminal reducer that records its lifecycle and reduces after
// stopAfter steps (0 means never).
type tally[T any] struct {
	stopAfter int
	steps     int
	completes int
	items     []T
}

func (p *tally[T]) Init() []T { return nil }

func (p *tally[T]) Step(acc []T, item T) (Result[[]T], error) {
	if p.stopAfter > 0 && p.steps >= p.stopAfter {
		panic("step called after reduced")
	}
	p.steps++
	p.items = append(p.items, item)
	acc = append(acc, item)
	if p.stopAfter > 0 && p.steps >= p.stopAfter {
		return Reduced(acc), nil
	}
	return Continue(acc), nil
}

func (p *tally[T]) Complete(acc []T) ([]T, error) {
	p.completes++
	return acc, nil
}
