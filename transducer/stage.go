package transducer

import "github.com/kbukum/transduce/errors"

// stage holds what every stage shares: the downstream reducer and whether it
// has already returned a reduced result. Stages embed it and call step
// rather than next.Step so that flushes can respect the reduced mark.
type stage[R, B any] struct {
	next    Reducer[R, B]
	reduced bool
}

func newStage[R, B any](next Reducer[R, B]) stage[R, B] {
	return stage[R, B]{next: next}
}

func (s *stage[R, B]) Init() R { return s.next.Init() }

func (s *stage[R, B]) Complete(acc R) (R, error) { return s.next.Complete(acc) }

func (s *stage[R, B]) CanCombine() bool { return CanCombine(s.next) }

func (s *stage[R, B]) Combine(a, b R) (R, error) {
	if c, ok := s.next.(Combiner[R]); ok {
		return c.Combine(a, b)
	}
	return a, errors.IncompatibleReducer("parallel", "combine")
}

func (s *stage[R, B]) step(acc R, item B) (Result[R], error) {
	r, err := s.next.Step(acc, item)
	if err == nil && r.IsReduced() {
		s.reduced = true
	}
	return r, err
}

// stepAll steps items downstream in order, stopping as soon as the
// downstream reduces.
func (s *stage[R, B]) stepAll(acc R, items []B) (Result[R], error) {
	for _, item := range items {
		r, err := s.step(acc, item)
		if err != nil || r.IsReduced() {
			return r, err
		}
		acc = r.Value()
	}
	return Continue(acc), nil
}

// flush emits held-back items from Complete, then completes downstream.
// Nothing is stepped into a downstream that already reduced.
func (s *stage[R, B]) flush(acc R, items ...B) (R, error) {
	if !s.reduced {
		r, err := s.stepAll(acc, items)
		if err != nil {
			return acc, err
		}
		acc = r.Value()
	}
	return s.next.Complete(acc)
}
