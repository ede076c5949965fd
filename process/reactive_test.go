package process_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/process"
	"github.com/kbukum/transduce/sink"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

// closingSink counts closes on top of a collecting feeder.
type closingSink struct {
	sink.Sink[int]
	closes int
}

func (s *closingSink) Close() error {
	s.closes++
	return s.Sink.Close()
}

func TestReactCanonicalPipeline(t *testing.T) {
	store := sink.NewCollecting[int](0)
	target := &closingSink{Sink: store.Feeder()}

	rest, err := process.React(context.Background(), canonical[sink.Sink[int]](), source.Range(0, 20), sink.Sink[int](target))
	require.NoError(t, err)

	assert.Equal(t, []int{16, 36, 49}, store.Items())
	assert.Equal(t, 1, target.closes)

	require.NotNil(t, rest)
	remaining, err := source.Collect(context.Background(), rest)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, remaining)
}

func TestReactExhaustsSource(t *testing.T) {
	store := sink.NewCollecting[int](0)
	double := transducer.Mapping[sink.Sink[int]](func(x int) int { return 2 * x })

	rest, err := process.React(context.Background(), double, source.Range(0, 4), store.Feeder())
	require.NoError(t, err)
	assert.Nil(t, rest)
	assert.Equal(t, []int{0, 2, 4, 6}, store.Items())
}

func TestReactFlushesOnClose(t *testing.T) {
	var batches [][]int
	target := sink.Func(func(b []int) (sink.Ack, error) {
		batches = append(batches, b)
		return sink.Accept, nil
	}, nil)
	xf := transducer.Must(transducer.Batching[sink.Sink[[]int], int](2))

	_, err := process.React(context.Background(), xf, source.Range(0, 5), target)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4}}, batches)
}

func TestReactSourceError(t *testing.T) {
	boom := fmt.Errorf("feed dropped")
	store := sink.NewCollecting[int](0)
	target := &closingSink{Sink: store.Feeder()}

	rest, err := process.React(context.Background(), transducer.Identity[sink.Sink[int], int](),
		failingSource([]int{1, 2}, boom), sink.Sink[int](target))
	assert.ErrorIs(t, err, boom)
	assert.NotNil(t, rest)
	assert.Equal(t, []int{1, 2}, store.Items())
	assert.Zero(t, target.closes, "a failed run leaves the target open")
}

func TestReactiveLifecycle(t *testing.T) {
	store := sink.NewCollecting[int](0)
	target := &closingSink{Sink: store.Feeder()}
	rx := process.NewReactive(context.Background(), transducer.Identity[sink.Sink[int], int](), sink.Sink[int](target))

	assert.Equal(t, process.AwaitingItem, rx.State())
	for i := range 3 {
		ack, err := rx.Send(i)
		require.NoError(t, err)
		assert.Equal(t, sink.Accept, ack)
	}

	require.NoError(t, rx.Close())
	assert.Equal(t, process.Closed, rx.State())
	assert.Equal(t, 1, target.closes)
	assert.Equal(t, []int{0, 1, 2}, store.Items())

	ack, err := rx.Send(3)
	assert.Equal(t, sink.Stop, ack)
	assert.True(t, errors.Is(err, errors.ErrCodeProtocolViolation))

	require.NoError(t, rx.Close())
	assert.Equal(t, 1, target.closes, "Close is idempotent")
}

func TestReactiveTerminatesOnReduced(t *testing.T) {
	store := sink.NewCollecting[int](0)
	target := &closingSink{Sink: store.Feeder()}
	xf := transducer.Must(transducer.Taking[sink.Sink[int], int](2))
	rx := process.NewReactive(context.Background(), xf, sink.Sink[int](target))

	ack, err := rx.Send(10)
	require.NoError(t, err)
	assert.Equal(t, sink.Accept, ack)

	ack, err = rx.Send(11)
	require.NoError(t, err)
	assert.Equal(t, sink.Stop, ack)
	assert.Equal(t, process.Terminated, rx.State())
	assert.Equal(t, 1, target.closes)

	_, err = rx.Send(12)
	assert.True(t, errors.Is(err, errors.ErrCodeProtocolViolation))
	require.NoError(t, rx.Close())
	assert.Equal(t, 1, target.closes)
	assert.Equal(t, []int{10, 11}, store.Items())
}

func TestReactiveStopsWhenTargetStops(t *testing.T) {
	single := sink.NewSingular[int]()
	rx := process.NewReactive(context.Background(), transducer.Identity[sink.Sink[int], int](), sink.Sink[int](single))

	ack, err := rx.Send(5)
	require.NoError(t, err)
	assert.Equal(t, sink.Stop, ack)
	assert.Equal(t, process.Terminated, rx.State())

	v, ok := single.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestReactiveStepError(t *testing.T) {
	boom := fmt.Errorf("rejected")
	target := &closingSink{Sink: sink.Func(func(x int) (sink.Ack, error) {
		if x < 0 {
			return sink.Stop, boom
		}
		return sink.Accept, nil
	}, nil)}
	rx := process.NewReactive(context.Background(), transducer.Identity[sink.Sink[int], int](), sink.Sink[int](target))

	_, err := rx.Send(-1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, process.Terminated, rx.State())
	assert.Zero(t, target.closes)
}

func TestReactivesChain(t *testing.T) {
	ctx := context.Background()
	store := sink.NewCollecting[int](0)

	evens := process.NewReactive(ctx, transducer.Filtering[sink.Sink[int]](func(x int) bool { return x%2 == 0 }), store.Feeder())
	squares := process.NewReactive(ctx, transducer.Mapping[sink.Sink[int]](func(x int) int { return x * x }), sink.Sink[int](evens))

	rest, err := source.Push(ctx, source.Range(0, 7), sink.Sink[int](squares))
	require.NoError(t, err)
	assert.Nil(t, rest)

	assert.Equal(t, []int{0, 4, 16, 36}, store.Items())
	assert.Equal(t, process.Closed, squares.State())
	assert.Equal(t, process.Closed, evens.State())
}
