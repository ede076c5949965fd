package process_test

import (
	"context"
	"fmt"

	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

type ints = []int

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// canonical is map(x²) → filter(x%5≠0) → taking(6) → dropping_while(x<15) → distinct.
func canonical[R any]() transducer.Transducer[R, int, int] {
	return transducer.Compose(
		transducer.Mapping[R](func(x int) int { return x * x }),
		transducer.Filtering[R](func(x int) bool { return x%5 != 0 }),
		transducer.Must(transducer.Taking[R, int](6)),
		transducer.DroppingWhile[R](func(x int) bool { return x < 15 }),
		transducer.Distinct[R, int](),
	)
}

// countingSource wraps items, recording pulls and closes.
type countingSource struct {
	source.Iterator[int]
	pulls  int
	closes int
}

func newCountingSource(items []int) *countingSource {
	return &countingSource{Iterator: source.FromSlice(items)}
}

func (s *countingSource) Next(ctx context.Context) (int, bool, error) {
	s.pulls++
	return s.Iterator.Next(ctx)
}

func (s *countingSource) Close() error {
	s.closes++
	return nil
}

// failingSource yields items and then fails.
func failingSource(items []int, err error) source.Iterator[int] {
	i := 0
	return source.FromFunc(func(context.Context) (int, bool, error) {
		if i >= len(items) {
			return 0, false, err
		}
		i++
		return items[i-1], true, nil
	})
}

// tally is a terminal reducer that records how often it completes.
type tally struct {
	steps     int
	completes int
	failOn    int
}

func (p *tally) Init() ints { return ints{} }

func (p *tally) Step(acc ints, item int) (transducer.Result[ints], error) {
	p.steps++
	if p.failOn != 0 && item == p.failOn {
		return transducer.Continue(acc), fmt.Errorf("bad item %d", item)
	}
	return transducer.Continue(append(acc, item)), nil
}

func (p *tally) Complete(acc ints) (ints, error) {
	p.completes++
	return acc, nil
}
