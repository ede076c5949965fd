package sink

import (
	"sync"

	"github.com/kbukum/transduce/errors"
)

// Collecting is a shared store that any number of feeders append into.
// Each reduction takes its own feeder; closing a feeder leaves the store
// and the other feeders untouched.
type Collecting[T any] struct {
	mu     sync.Mutex
	items  []T
	maxLen int
}

// NewCollecting creates an empty store. With maxLen > 0 only the most
// recent maxLen items are kept.
func NewCollecting[T any](maxLen int) *Collecting[T] {
	return &Collecting[T]{maxLen: max(0, maxLen)}
}

// Feeder returns a fresh sink appending into the store.
func (c *Collecting[T]) Feeder() Sink[T] {
	return &feeder[T]{store: c}
}

func (c *Collecting[T]) add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	if c.maxLen > 0 && len(c.items) > c.maxLen {
		c.items = c.items[len(c.items)-c.maxLen:]
	}
}

// Items returns a copy of the collected items in arrival order.
func (c *Collecting[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Drain returns the collected items and empties the store.
func (c *Collecting[T]) Drain() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Len returns the number of items held.
func (c *Collecting[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

type feeder[T any] struct {
	gate
	store *Collecting[T]
}

func (f *feeder[T]) Send(item T) (Ack, error) {
	if !f.open() {
		return Stop, nil
	}
	f.store.add(item)
	return Accept, nil
}

func (f *feeder[T]) Close() error {
	f.shut()
	return nil
}

// Singular holds exactly one item. It keeps the first item and answers
// Stop, since it can take no more; sending again anyway is a
// TOO_MANY_ITEMS error.
type Singular[T any] struct {
	gate
	item T
	set  bool
}

// NewSingular creates an empty singular sink.
func NewSingular[T any]() *Singular[T] {
	return &Singular[T]{}
}

func (s *Singular[T]) Send(item T) (Ack, error) {
	if !s.open() {
		return Stop, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return Stop, errors.TooManyItems("singular sink", 1)
	}
	s.item, s.set = item, true
	return Stop, nil
}

func (s *Singular[T]) Close() error {
	s.shut()
	return nil
}

// Value returns the received item, if any.
func (s *Singular[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item, s.set
}
