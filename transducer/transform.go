package transducer

// Indexed is an item paired with its position, as emitted by Enumerating.
type Indexed[A any] struct {
	Index int
	Value A
}

// Mapping replaces each item with fn(item).
func Mapping[R, A, B any](fn func(A) B) Transducer[R, A, B] {
	return func(next Reducer[R, B]) Reducer[R, A] {
		return &mapping[R, A, B]{stage: newStage(next), fn: fn}
	}
}

type mapping[R, A, B any] struct {
	stage[R, B]
	fn func(A) B
}

func (s *mapping[R, A, B]) Step(acc R, item A) (Result[R], error) {
	return s.step(acc, s.fn(item))
}

// Filtering passes only items satisfying pred.
func Filtering[R, A any](pred func(A) bool) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &filtering[R, A]{stage: newStage(next), pred: pred}
	}
}

type filtering[R, A any] struct {
	stage[R, A]
	pred func(A) bool
}

func (s *filtering[R, A]) Step(acc R, item A) (Result[R], error) {
	if !s.pred(item) {
		return Continue(acc), nil
	}
	return s.step(acc, item)
}

// Mapcatting expands each item into fn(item) and passes the elements on one
// by one.
func Mapcatting[R, A, B any](fn func(A) []B) Transducer[R, A, B] {
	return func(next Reducer[R, B]) Reducer[R, A] {
		return &mapcatting[R, A, B]{stage: newStage(next), fn: fn}
	}
}

type mapcatting[R, A, B any] struct {
	stage[R, B]
	fn func(A) []B
}

func (s *mapcatting[R, A, B]) Step(acc R, item A) (Result[R], error) {
	return s.stepAll(acc, s.fn(item))
}

// Enumerating pairs each item with a counter starting at start.
func Enumerating[R, A any](start int) Transducer[R, A, Indexed[A]] {
	return func(next Reducer[R, Indexed[A]]) Reducer[R, A] {
		return &enumerating[R, A]{stage: newStage(next), counter: start}
	}
}

type enumerating[R, A any] struct {
	stage[R, Indexed[A]]
	counter int
}

func (s *enumerating[R, A]) Step(acc R, item A) (Result[R], error) {
	i := s.counter
	s.counter++
	return s.step(acc, Indexed[A]{Index: i, Value: item})
}

// Scanning emits the running fold of fn over the items. The first item is
// emitted unchanged and seeds the fold.
func Scanning[R, A any](fn func(A, A) A) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &scanning[R, A, A]{stage: newStage(next), fn: fn, first: func(a A) A { return a }}
	}
}

// ScanningFrom emits fn folded from seed after every item.
func ScanningFrom[R, A, S any](fn func(S, A) S, seed S) Transducer[R, A, S] {
	return func(next Reducer[R, S]) Reducer[R, A] {
		return &scanning[R, A, S]{stage: newStage(next), fn: fn, first: func(a A) S { return fn(seed, a) }}
	}
}

type scanning[R, A, S any] struct {
	stage[R, S]
	fn      func(S, A) S
	first   func(A) S
	acc     S
	started bool
}

func (s *scanning[R, A, S]) Step(acc R, item A) (Result[R], error) {
	if s.started {
		s.acc = s.fn(s.acc, item)
	} else {
		s.acc = s.first(item)
		s.started = true
	}
	return s.step(acc, s.acc)
}

// Tapping calls fn on every item for its side effect and passes it on.
func Tapping[R, A any](fn func(A)) Transducer[R, A, A] {
	return Mapping[R](func(a A) A {
		fn(a)
		return a
	})
}

// Repeating emits every item count times in a row.
func Repeating[R, A any](count int) (Transducer[R, A, A], error) {
	if err := nonNegative("count", count); err != nil {
		return nil, err
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &repeating[R, A]{stage: newStage(next), count: count}
	}, nil
}

type repeating[R, A any] struct {
	stage[R, A]
	count int
}

func (s *repeating[R, A]) Step(acc R, item A) (Result[R], error) {
	for range s.count {
		r, err := s.step(acc, item)
		if err != nil || r.IsReduced() {
			return r, err
		}
		acc = r.Value()
	}
	return Continue(acc), nil
}
