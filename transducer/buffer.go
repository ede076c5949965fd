package transducer

import (
	"cmp"
	"slices"

	"github.com/kbukum/transduce/functional"
)

// Pair holds two consecutive items, as emitted by Pairwise.
type Pair[A any] struct {
	First, Second A
}

// Group is one key and its items in arrival order, as emitted by Grouping.
type Group[K comparable, A any] struct {
	Key   K
	Items []A
}

// Reducing folds all items with fn and emits the single result on
// completion. The first item seeds the fold; with no items nothing is
// emitted.
func Reducing[R, A any](fn func(A, A) A) Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &reducing[R, A, A]{stage: newStage(next), fn: fn, first: func(a A) A { return a }}
	}
}

// ReducingFrom folds all items into seed with fn and emits the result on
// completion, including the bare seed when there were no items.
func ReducingFrom[R, A, S any](fn func(S, A) S, seed S) Transducer[R, A, S] {
	return func(next Reducer[R, S]) Reducer[R, A] {
		return &reducing[R, A, S]{stage: newStage(next), fn: fn, acc: seed, started: true}
	}
}

type reducing[R, A, S any] struct {
	stage[R, S]
	fn      func(S, A) S
	first   func(A) S
	acc     S
	started bool
}

func (s *reducing[R, A, S]) Step(acc R, item A) (Result[R], error) {
	if s.started {
		s.acc = s.fn(s.acc, item)
	} else {
		s.acc = s.first(item)
		s.started = true
	}
	return Continue(acc), nil
}

func (s *reducing[R, A, S]) Complete(acc R) (R, error) {
	if !s.started {
		return s.flush(acc)
	}
	return s.flush(acc, s.acc)
}

// Pairwise emits each item paired with its predecessor. A lone leading item
// with no successor is discarded.
func Pairwise[R, A any]() Transducer[R, A, Pair[A]] {
	return func(next Reducer[R, Pair[A]]) Reducer[R, A] {
		return &pairwise[R, A]{stage: newStage(next)}
	}
}

type pairwise[R, A any] struct {
	stage[R, Pair[A]]
	prev    A
	hasPrev bool
}

func (s *pairwise[R, A]) Step(acc R, item A) (Result[R], error) {
	prev, had := s.prev, s.hasPrev
	s.prev, s.hasPrev = item, true
	if !had {
		return Continue(acc), nil
	}
	return s.step(acc, Pair[A]{First: prev, Second: item})
}

// Batching groups items into non-overlapping slices of size items. A final
// shorter batch is emitted on completion.
func Batching[R, A any](size int) (Transducer[R, A, []A], error) {
	if err := positive("size", size); err != nil {
		return nil, err
	}
	return func(next Reducer[R, []A]) Reducer[R, A] {
		return &batching[R, A]{stage: newStage(next), size: size}
	}, nil
}

type batching[R, A any] struct {
	stage[R, []A]
	size    int
	pending []A
}

func (s *batching[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.pending == nil {
		s.pending = make([]A, 0, s.size)
	}
	s.pending = append(s.pending, item)
	if len(s.pending) < s.size {
		return Continue(acc), nil
	}
	batch := s.pending
	s.pending = nil
	return s.step(acc, batch)
}

func (s *batching[R, A]) Complete(acc R) (R, error) {
	if len(s.pending) == 0 {
		return s.flush(acc)
	}
	batch := s.pending
	s.pending = nil
	return s.flush(acc, batch)
}

// Last emits, on completion, the last item satisfying pred. A nil pred
// accepts every item.
func Last[R, A any](pred func(A) bool) Transducer[R, A, A] {
	if pred == nil {
		pred = functional.True[A]
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &last[R, A]{stage: newStage(next), pred: pred}
	}
}

type last[R, A any] struct {
	stage[R, A]
	pred func(A) bool
	item A
	seen bool
}

func (s *last[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.pred(item) {
		s.item, s.seen = item, true
	}
	return Continue(acc), nil
}

func (s *last[R, A]) Complete(acc R) (R, error) {
	if !s.seen {
		return s.flush(acc)
	}
	return s.flush(acc, s.item)
}

// Reversing emits all items in reverse arrival order on completion.
func Reversing[R, A any]() Transducer[R, A, A] {
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &reversing[R, A]{stage: newStage(next)}
	}
}

type reversing[R, A any] struct {
	stage[R, A]
	items []A
}

func (s *reversing[R, A]) Step(acc R, item A) (Result[R], error) {
	s.items = append(s.items, item)
	return Continue(acc), nil
}

func (s *reversing[R, A]) Complete(acc R) (R, error) {
	items := s.items
	s.items = nil
	slices.Reverse(items)
	return s.flush(acc, items...)
}

// OrderOption configures Ordering and OrderingBy.
type OrderOption func(*orderOptions)

type orderOptions struct {
	descending bool
}

// Descending emits the stable ascending order reversed, so equal items
// come out in reverse arrival order.
func Descending() OrderOption {
	return func(o *orderOptions) { o.descending = true }
}

// Ordering emits all items sorted on completion. The sort is stable.
func Ordering[R any, A cmp.Ordered](opts ...OrderOption) Transducer[R, A, A] {
	return OrderingBy[R](func(a A) A { return a }, opts...)
}

// OrderingBy emits all items sorted by key(item) on completion. The sort is
// stable.
func OrderingBy[R, A any, K cmp.Ordered](key func(A) K, opts ...OrderOption) Transducer[R, A, A] {
	var o orderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return func(next Reducer[R, A]) Reducer[R, A] {
		return &ordering[R, A, K]{stage: newStage(next), key: key, descending: o.descending}
	}
}

type ordering[R, A any, K cmp.Ordered] struct {
	stage[R, A]
	key        func(A) K
	descending bool
	items      []A
}

func (s *ordering[R, A, K]) Step(acc R, item A) (Result[R], error) {
	s.items = append(s.items, item)
	return Continue(acc), nil
}

func (s *ordering[R, A, K]) Complete(acc R) (R, error) {
	items := s.items
	s.items = nil
	slices.SortStableFunc(items, func(a, b A) int {
		return cmp.Compare(s.key(a), s.key(b))
	})
	if s.descending {
		slices.Reverse(items)
	}
	return s.flush(acc, items...)
}

// Counting emits, on completion, how many items satisfied pred. A nil pred
// counts every item.
func Counting[R, A any](pred func(A) bool) Transducer[R, A, int] {
	if pred == nil {
		pred = functional.True[A]
	}
	return func(next Reducer[R, int]) Reducer[R, A] {
		return &counting[R, A]{stage: newStage(next), pred: pred}
	}
}

type counting[R, A any] struct {
	stage[R, int]
	pred  func(A) bool
	count int
}

func (s *counting[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.pred(item) {
		s.count++
	}
	return Continue(acc), nil
}

func (s *counting[R, A]) Complete(acc R) (R, error) {
	return s.flush(acc, s.count)
}

// Grouping buckets items by key(item) and emits, on completion, one Group
// per key in the order keys were first seen.
func Grouping[R, A any, K comparable](key func(A) K) Transducer[R, A, Group[K, A]] {
	return func(next Reducer[R, Group[K, A]]) Reducer[R, A] {
		return &grouping[R, A, K]{stage: newStage(next), key: key, index: make(map[K]int)}
	}
}

type grouping[R, A any, K comparable] struct {
	stage[R, Group[K, A]]
	key    func(A) K
	index  map[K]int
	groups []Group[K, A]
}

func (s *grouping[R, A, K]) Step(acc R, item A) (Result[R], error) {
	k := s.key(item)
	i, ok := s.index[k]
	if !ok {
		i = len(s.groups)
		s.index[k] = i
		s.groups = append(s.groups, Group[K, A]{Key: k})
	}
	s.groups[i].Items = append(s.groups[i].Items, item)
	return Continue(acc), nil
}

func (s *grouping[R, A, K]) Complete(acc R) (R, error) {
	groups := s.groups
	s.groups = nil
	return s.flush(acc, groups...)
}
