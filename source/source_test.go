package source

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/resilience"
	"github.com/kbukum/transduce/sink"
)

type closeCounter[T any] struct {
	Iterator[T]
	closes int
}

func (c *closeCounter[T]) Close() error {
	c.closes++
	return c.Iterator.Close()
}

func TestFromSlice(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = Collect(context.Background(), FromSlice[int](nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRangeAndCount(t *testing.T) {
	got, err := Collect(context.Background(), Range(2, 6))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, got)

	got, err = Collect(context.Background(), Range(3, 3))
	require.NoError(t, err)
	assert.Empty(t, got)

	it := Count(10)
	for want := 10; want < 15; want++ {
		v, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestFromSeq(t *testing.T) {
	it := FromSeq(slices.Values([]string{"a", "b", "c"}))
	v, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	require.NoError(t, it.Close())

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "a stopped sequence is exhausted")
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	close(ch)

	got, err := Collect(context.Background(), FromChannel(ch))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFromChannelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := FromChannel(make(chan int)).Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectStopsAtError(t *testing.T) {
	boom := fmt.Errorf("boom")
	n := 0
	it := FromFunc(func(context.Context) (int, bool, error) {
		n++
		if n == 3 {
			return 0, false, boom
		}
		return n, true, nil
	})

	got, err := Collect(context.Background(), it)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, got)
}

func TestBuffered(t *testing.T) {
	src := &closeCounter[int]{Iterator: Range(0, 100)}
	it := Buffered[int](context.Background(), src, 8)

	got, err := Collect(context.Background(), it)
	require.NoError(t, err)
	assert.Len(t, got, 100)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 99, got[99])
	assert.Equal(t, 1, src.closes)
}

func TestBufferedPassesErrors(t *testing.T) {
	boom := fmt.Errorf("boom")
	calls := 0
	src := FromFunc(func(context.Context) (int, bool, error) {
		calls++
		if calls > 2 {
			return 0, false, boom
		}
		return calls, true, nil
	})

	got, err := Collect(context.Background(), Buffered(context.Background(), src, 1))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, got)
}

func TestBufferedCloseEarly(t *testing.T) {
	src := &closeCounter[int]{Iterator: Count(0)}
	it := Buffered[int](context.Background(), src, 2)

	v, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, v)

	require.NoError(t, it.Close())
	assert.Equal(t, 1, src.closes)
}

func TestPoisson(t *testing.T) {
	_, err := Poisson(Range(0, 3), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))

	it, err := Poisson(Range(0, 3), 1e9)
	require.NoError(t, err)

	var waits []time.Duration
	it.(*poissonIter[int]).pause = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	got, err := Collect(context.Background(), it)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Len(t, waits, 4, "one pause per pull, including the final one")
	for _, w := range waits {
		assert.GreaterOrEqual(t, w, time.Duration(0))
	}
}

func TestPoissonCanceled(t *testing.T) {
	it, err := Poisson(Count(0), 1e-6)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, ok, err := it.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimited(t *testing.T) {
	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "test", Rate: 1000, Burst: 5})

	got, err := Collect(context.Background(), RateLimited(Range(0, 5), limiter))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestRetrying(t *testing.T) {
	cfg := resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}

	t.Run("recovers", func(t *testing.T) {
		var failures atomic.Int32
		src := FromFunc(func(context.Context) (int, bool, error) {
			if failures.Add(1) <= 2 {
				return 0, false, fmt.Errorf("flaky")
			}
			return 7, true, nil
		})

		it, err := Retrying(src, "flaky", cfg)
		require.NoError(t, err)
		v, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 7, v)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		src := FromFunc(func(context.Context) (int, bool, error) {
			calls++
			return 0, false, fmt.Errorf("down")
		})

		it, err := Retrying(src, "sensor", cfg)
		require.NoError(t, err)
		_, ok, err := it.Next(context.Background())
		assert.False(t, ok)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeSourceFailed))
		assert.True(t, errors.IsRetryable(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry invalid argument", func(t *testing.T) {
		calls := 0
		src := FromFunc(func(context.Context) (int, bool, error) {
			calls++
			return 0, false, errors.InvalidArgument("x", "bad")
		})

		it, err := Retrying(src, "strict", cfg)
		require.NoError(t, err)
		_, _, err = it.Next(context.Background())
		assert.True(t, errors.Is(err, errors.ErrCodeSourceFailed))
		assert.Equal(t, 1, calls)
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := Retrying(FromSlice([]int{1}), "  ", cfg)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
	})

	t.Run("failure keeps its cause", func(t *testing.T) {
		down := fmt.Errorf("link down")
		it, err := Retrying(FromFunc(func(context.Context) (int, bool, error) { return 0, false, down }), "link", cfg)
		require.NoError(t, err)
		_, _, err = it.Next(context.Background())
		assert.ErrorIs(t, err, down)
	})
}

func TestPush(t *testing.T) {
	t.Run("exhausted", func(t *testing.T) {
		store := sink.NewCollecting[int](0)
		target := store.Feeder()

		rest, err := Push(context.Background(), Range(0, 3), target)
		require.NoError(t, err)
		assert.Nil(t, rest)
		assert.Equal(t, []int{0, 1, 2}, store.Items())

		ack, _ := target.Send(9)
		assert.Equal(t, sink.Stop, ack, "target was closed")
	})

	t.Run("stopped early", func(t *testing.T) {
		closes := 0
		var got []int
		target := sink.Func(func(v int) (sink.Ack, error) {
			got = append(got, v)
			if len(got) == 2 {
				return sink.Stop, nil
			}
			return sink.Accept, nil
		}, func() error {
			closes++
			return nil
		})

		rest, err := Push(context.Background(), Range(0, 5), target)
		require.NoError(t, err)
		require.NotNil(t, rest)
		assert.Equal(t, []int{0, 1}, got)
		assert.Equal(t, 1, closes)

		remaining, err := Collect(context.Background(), rest)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3, 4}, remaining)
	})

	t.Run("source failure leaves target open", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		closes := 0
		target := sink.Func(func(int) (sink.Ack, error) { return sink.Accept, nil }, func() error {
			closes++
			return nil
		})
		src := FromFunc(func(context.Context) (int, bool, error) { return 0, false, boom })

		rest, err := Push(context.Background(), src, target)
		assert.ErrorIs(t, err, boom)
		assert.NotNil(t, rest)
		assert.Zero(t, closes)
	})
}
