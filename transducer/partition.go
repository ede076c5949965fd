package transducer

import (
	"math"

	"github.com/kbukum/transduce/validation"
)

// PartitionPolicy decides how many items each successive partition holds.
// Size is called with the zero-based partition number.
type PartitionPolicy interface {
	Size(partition int) int
}

// GeometricPolicy grows partitions geometrically: partition n holds
// Initial*Factor^n items, capped at Max. Small leading partitions let
// workers start early; larger later ones amortize per-partition overhead.
type GeometricPolicy struct {
	Initial int
	Factor  float64
	Max     int
}

// DefaultPartitionPolicy is the policy the parallel driver uses unless told
// otherwise.
func DefaultPartitionPolicy() GeometricPolicy {
	return GeometricPolicy{Initial: 16, Factor: 2, Max: 4096}
}

// Validate checks Initial >= 1, Factor >= 1 and Max >= Initial.
func (p GeometricPolicy) Validate() error {
	return validation.New().
		Positive("initial", p.Initial).
		Check(p.Factor >= 1, "factor", "must be at least 1").
		Min("max", p.Max, p.Initial).
		Err()
}

func (p GeometricPolicy) Size(partition int) int {
	size := float64(p.Initial) * math.Pow(p.Factor, float64(partition))
	if size >= float64(p.Max) {
		return p.Max
	}
	return max(1, int(size))
}

// FixedPolicy gives every partition the same number of items.
type FixedPolicy int

// Validate checks the size is at least one.
func (p FixedPolicy) Validate() error {
	return validation.Positive("size", int(p))
}

func (p FixedPolicy) Size(int) int { return int(p) }

// Partitioning buffers items into consecutive partitions sized by policy
// and emits each as it fills. A final shorter partition is emitted on
// completion.
func Partitioning[R, A any](policy PartitionPolicy) (Transducer[R, A, []A], error) {
	if v, ok := policy.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return func(next Reducer[R, []A]) Reducer[R, A] {
		s := &partitioning[R, A]{stage: newStage(next), policy: policy}
		s.target = max(1, policy.Size(0))
		return s
	}, nil
}

type partitioning[R, A any] struct {
	stage[R, []A]
	policy  PartitionPolicy
	n       int
	target  int
	pending []A
}

func (s *partitioning[R, A]) Step(acc R, item A) (Result[R], error) {
	if s.pending == nil {
		s.pending = make([]A, 0, s.target)
	}
	s.pending = append(s.pending, item)
	if len(s.pending) < s.target {
		return Continue(acc), nil
	}
	part := s.pending
	s.pending = nil
	s.n++
	s.target = max(1, s.policy.Size(s.n))
	return s.step(acc, part)
}

func (s *partitioning[R, A]) Complete(acc R) (R, error) {
	if len(s.pending) == 0 {
		return s.flush(acc)
	}
	part := s.pending
	s.pending = nil
	return s.flush(acc, part)
}
