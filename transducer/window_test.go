package transducer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type windows = [][]int

func TestWindowingGrowsAndShrinks(t *testing.T) {
	xf := Must(Windowing[windows, int](3))

	assert.Equal(t, windows{
		{1}, {1, 2}, {1, 2, 3}, {2, 3, 4}, {3, 4}, {4},
	}, collect(t, xf, []int{1, 2, 3, 4}))
}

func TestWindowingShortInput(t *testing.T) {
	xf := Must(Windowing[windows, int](3))

	assert.Equal(t, windows{{1}, {1, 2}, {2}}, collect(t, xf, []int{1, 2}))
	assert.Empty(t, collect(t, xf, nil))
}

func TestWindowingCount(t *testing.T) {
	for k := 1; k <= 4; k++ {
		for n := k; n <= 10; n++ {
			got := collect(t, Must(Windowing[windows, int](k)), rangeInts(n))
			assert.Len(t, got, n+k-1, "n=%d k=%d", n, k)
			for _, w := range got {
				assert.LessOrEqual(t, len(w), k)
				assert.NotEmpty(t, w)
			}
		}
	}
}

func TestWindowingWithPadding(t *testing.T) {
	xf := Must(Windowing[windows](3, WithPadding(0)))

	assert.Equal(t, windows{
		{0, 0, 1}, {0, 1, 2}, {1, 2, 0}, {2, 0, 0},
	}, collect(t, xf, []int{1, 2}))
}

func TestWindowingWithPaddingOnEmptyInput(t *testing.T) {
	xf := Must(Windowing[windows](3, WithPadding(-1)))

	assert.Equal(t, windows{{-1, -1, -1}, {-1, -1, -1}}, collect(t, xf, nil))
}

func TestWindowingWithPaddingHasFixedSize(t *testing.T) {
	const pad = -1
	for k := 1; k <= 4; k++ {
		for n := 0; n <= 8; n++ {
			got := collect(t, Must(Windowing[windows](k, WithPadding(pad))), rangeInts(n))
			require.Len(t, got, n+k-1, "n=%d k=%d", n, k)
			for _, w := range got {
				assert.Len(t, w, k)
			}
			if n > 0 && k > 1 {
				assert.Equal(t, pad, got[0][0], "first window starts with padding")
				assert.Equal(t, pad, got[len(got)-1][k-1], "last window ends with padding")
			}
		}
	}
}

func TestWindowingSnapshotsAreIndependent(t *testing.T) {
	got := collect(t, Must(Windowing[windows, int](2)), []int{1, 2, 3})
	got[0][0] = 99

	assert.Equal(t, windows{{99}, {1, 2}, {2, 3}, {3}}, got)
}

func TestWindowingInto(t *testing.T) {
	sum := func(w []int) int {
		total := 0
		for _, x := range w {
			total += x
		}
		return total
	}
	xf := Must(WindowingInto[ints](2, sum))

	assert.Equal(t, []int{1, 3, 5, 3}, collect(t, xf, []int{1, 2, 3}))
}

func TestWindowingSkipsTailAfterDownstreamReduced(t *testing.T) {
	p := &tally[[]int]{}
	xf := Chain(Must(Windowing[windows, int](2)), Must(Taking[windows, []int](2)))

	out, err := reduce(xf, Reducer[windows, []int](p), []int{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, windows{{1}, {1, 2}}, out)
	assert.Equal(t, 2, p.steps, "the trailing window is not pushed into a reduced downstream")
	assert.Equal(t, 1, p.completes)
}

func TestFlushStopsWhenDownstreamReducesMidFlush(t *testing.T) {
	p := &tally[int]{stopAfter: 2}

	out, err := reduce(Reversing[ints, int](), Reducer[ints, int](p), []int{1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 3}, out)
	assert.Equal(t, 1, p.completes)
}
