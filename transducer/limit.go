package transducer

import (
	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/functional"
)

// Taking passes the first n items and then ends the run. Taking(0) ends the
// run on the first item without passing it.
func Taking[R, A any](n int) (Transducer[R, A, A], error) {
	if err := nonNegative("n", n); err != nil {
		return nil, err
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &taking[R, A]{stage: newStage(next), n: n}
	}, nil
}

type taking[R, A any] struct {
	stage[R, A]
	n, seen int
}

func (s *taking[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.seen >= s.n {
		return Reduced(acc), nil
	}
	s.seen++
	r, err := s.step(acc, item)
	if err != nil {
		return r, err
	}
	if s.seen >= s.n {
		return EnsureReduced(r), nil
	}
	return r, nil
}

// TakingWhile passes items while pred holds and ends the run, without
// passing it, on the first item that fails.
func TakingWhile[R, A any](pred func(A) bool) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &takingWhile[R, A]{stage: newStage(next), pred: pred}
	}
}

type takingWhile[R, A any] struct {
	stage[R, A]
	pred func(A) bool
}

func (s *takingWhile[R, A]) Step(acc R, item A) (Result[R], error) {
	if !s.pred(item) {
		return Reduced(acc), nil
	}
	return s.step(acc, item)
}

// Dropping discards the first n items and passes the rest.
func Dropping[R, A any](n int) (Transducer[R, A, A], error) {
	if err := nonNegative("n", n); err != nil {
		return nil, err
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &dropping[R, A]{stage: newStage(next), n: n}
	}, nil
}

type dropping[R, A any] struct {
	stage[R, A]
	n, seen int
}

func (s *dropping[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.seen < s.n {
		s.seen++
		return Continue(acc), nil
	}
	return s.step(acc, item)
}

// DroppingWhile discards leading items while pred holds. From the first
// item that fails, everything passes.
func DroppingWhile[R, A any](pred func(A) bool) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &droppingWhile[R, A]{stage: newStage(next), pred: pred}
	}
}

type droppingWhile[R, A any] struct {
	stage[R, A]
	pred    func(A) bool
	passing bool
}

func (s *droppingWhile[R, A]) Step(acc R, item A) (Result[R], error) {
	if !s.passing {
		if s.pred(item) {
			return Continue(acc), nil
		}
		s.passing = true
	}
	return s.step(acc, item)
}

// Distinct passes the first occurrence of each item.
func Distinct[R any, A comparable]() Transducer[R, A, A] {
	return DistinctBy[R](func(a A) A { return a })
}

// DistinctBy passes the first item seen for each key(item).
func DistinctBy[R, A any, K comparable](key func(A) K) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &distinct[R, A, K]{stage: newStage(next), key: key, seen: make(map[K]struct{})}
	}
}

type distinct[R, A any, K comparable] struct {
	stage[R, A]
	key  func(A) K
	seen map[K]struct{}
}

func (s *distinct[R, A, K]) Step(acc R, item A) (Result[R], error) {
	k := s.key(item)
	if _, ok := s.seen[k]; ok {
		return Continue(acc), nil
	}
	s.seen[k] = struct{}{}
	return s.step(acc, item)
}

// First passes the first item satisfying pred and ends the run. A nil pred
// accepts every item.
func First[R, A any](pred func(A) bool) Transducer[R, A, A] {
	if pred == nil {
		pred = functional.True[A]
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &first[R, A]{stage: newStage(next), pred: pred}
	}
}

type first[R, A any] struct {
	stage[R, A]
	pred func(A) bool
}

func (s *first[R, A]) Step(acc R, item A) (Result[R], error) {
	if !s.pred(item) {
		return Continue(acc), nil
	}
	r, err := s.step(acc, item)
	if err != nil {
		return r, err
	}
	return EnsureReduced(r), nil
}

// ElementAt passes the item at index and ends the run. Completing before
// that index was reached is an OUT_OF_RANGE error.
func ElementAt[R, A any](index int) (Transducer[R, A, A], error) {
	if err := nonNegative("index", index); err != nil {
		return nil, err
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &elementAt[R, A]{stage: newStage(next), index: index}
	}, nil
}

type elementAt[R, A any] struct {
	stage[R, A]
	index, seen int
}

func (s *elementAt[R, A]) Step(acc R, item A) (Result[R], error) {
	i := s.seen
	s.seen++
	if i < s.index {
		return Continue(acc), nil
	}
	r, err := s.step(acc, item)
	if err != nil {
		return r, err
	}
	return EnsureReduced(r), nil
}

func (s *elementAt[R, A]) Complete(acc R) (R, error) {
	if s.seen <= s.index {
		return acc, errors.OutOfRange(s.index, s.seen)
	}
	return s.next.Complete(acc)
}
