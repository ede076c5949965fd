package process_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/process"
	"github.com/kbukum/transduce/reducers"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

var policies = []struct {
	name   string
	policy transducer.PartitionPolicy
}{
	{"default", transducer.DefaultPartitionPolicy()},
	{"fixed 1", transducer.FixedPolicy(1)},
	{"fixed 7", transducer.FixedPolicy(7)},
	{"geometric", transducer.GeometricPolicy{Initial: 2, Factor: 1.5, Max: 20}},
}

func TestParallelRejectsNonCombiningReducer(t *testing.T) {
	src := newCountingSource(rangeInts(10))
	plain := transducer.Completing(func(acc []int, x int) []int { return append(acc, x) }, ints(nil))

	_, err := process.Parallel(context.Background(), transducer.Identity[ints, int](), plain, source.Iterator[int](src))
	assert.True(t, errors.Is(err, errors.ErrCodeIncompatibleReducer))
	assert.Zero(t, src.pulls)
	assert.Equal(t, 1, src.closes)

	_, err = process.ParallelSlice[ints](context.Background(), transducer.Identity[ints, int](), &tally{}, rangeInts(3))
	assert.True(t, errors.Is(err, errors.ErrCodeIncompatibleReducer))
}

func TestParallelMatchesEager(t *testing.T) {
	ctx := context.Background()
	xf := transducer.Chain(
		transducer.Mapping[ints](func(x int) int { return x * 3 }),
		transducer.Filtering[ints](func(x int) bool { return x%2 == 1 }),
	)
	items := rangeInts(500)

	want, err := process.TransduceSlice(ctx, xf, reducers.Appending[int](), items)
	require.NoError(t, err)

	for _, tt := range policies {
		t.Run(tt.name, func(t *testing.T) {
			got, err := process.ParallelSlice(ctx, xf, reducers.Appending[int](), items,
				process.WithPartitionPolicy(tt.policy), process.WithWorkers(3))
			require.NoError(t, err)
			assert.Equal(t, want, got, "partials combine in partition order")
		})
	}
}

func TestParallelPartitionInvariance(t *testing.T) {
	ctx := context.Background()
	square := transducer.Mapping[int](func(x int) int { return x * x })
	mod7 := transducer.Mapping[map[int]struct{}](func(x int) int { return x % 7 })

	for _, tt := range policies {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := process.Parallel(ctx, square, reducers.Summing[int](), source.Range(0, 100),
				process.WithPartitionPolicy(tt.policy))
			require.NoError(t, err)
			assert.Equal(t, 328350, sum)

			set, err := process.Parallel(ctx, mod7, reducers.Adding[int](), source.Range(0, 100),
				process.WithPartitionPolicy(tt.policy))
			require.NoError(t, err)
			assert.Len(t, set, 7)
		})
	}
}

func TestParallelPartitionsGetTheirOwnSeed(t *testing.T) {
	concat := func(a, b []int) []int { return append(a, b...) }
	rf := transducer.Completing(func(acc []int, x int) []int { return append(acc, x) }, make([]int, 0, 1024)).
		WithCombine(concat)

	got, err := process.ParallelSlice(context.Background(), transducer.Identity[ints, int](), rf, rangeInts(64),
		process.WithPartitionPolicy(transducer.FixedPolicy(8)), process.WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, rangeInts(64), got)
}

func TestParallelStageStateIsPerPartition(t *testing.T) {
	counting := transducer.Counting[int, int](func(x int) bool { return x%3 == 0 })

	got, err := process.ParallelSlice(context.Background(), counting, reducers.Summing[int](), rangeInts(30),
		process.WithPartitionPolicy(transducer.FixedPolicy(4)))
	require.NoError(t, err)
	assert.Equal(t, 10, got, "each partition flushes its own count")
}

func TestParallelEmptyInput(t *testing.T) {
	got, err := process.ParallelSlice(context.Background(), transducer.Identity[ints, int](), reducers.Appending[int](), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParallelWithInitSeedsCombine(t *testing.T) {
	got, err := process.ParallelSlice(context.Background(), transducer.Identity[int, int](), reducers.Summing[int](),
		rangeInts(10), process.WithInit(1000), process.WithPartitionPolicy(transducer.FixedPolicy(3)))
	require.NoError(t, err)
	assert.Equal(t, 1045, got, "the seed is counted once")
}

// failingSum combines but rejects one item.
type failingSum struct {
	bad int
}

func (f failingSum) Init() int { return 0 }

func (f failingSum) Step(acc int, x int) (transducer.Result[int], error) {
	if x == f.bad {
		return transducer.Continue(acc), fmt.Errorf("cannot sum %d", x)
	}
	return transducer.Continue(acc + x), nil
}

func (f failingSum) Complete(acc int) (int, error) { return acc, nil }

func (f failingSum) Combine(a, b int) (int, error) { return a + b, nil }

func TestParallelPartitionFailure(t *testing.T) {
	_, err := process.ParallelSlice(context.Background(), transducer.Identity[int, int](), transducer.Reducer[int, int](failingSum{bad: 42}),
		rangeInts(100), process.WithPartitionPolicy(transducer.FixedPolicy(10)), process.WithWorkers(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot sum 42")
}

func TestParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := process.ParallelSlice(ctx, transducer.Identity[int, int](), reducers.Summing[int](), rangeInts(10))
	assert.True(t, errors.Is(err, errors.ErrCodeCanceled))
}

func TestParallelSourceError(t *testing.T) {
	boom := fmt.Errorf("upstream closed")

	_, err := process.Parallel(context.Background(), transducer.Identity[int, int](), reducers.Summing[int](),
		failingSource(rangeInts(5), boom))
	assert.ErrorIs(t, err, boom)
}
