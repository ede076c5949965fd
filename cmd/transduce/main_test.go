package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/transduce/process"
	"github.com/kbukum/transduce/sink"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

func TestDrainRemainder(t *testing.T) {
	ctx := context.Background()

	exhausted, err := process.React(ctx, transducer.Identity[sink.Sink[int], int](), source.Range(0, 5), sink.Null[int]())
	require.NoError(t, err)
	require.Nil(t, exhausted)
	n, err := drain(ctx, exhausted)
	require.NoError(t, err)
	assert.Zero(t, n)

	stopped, err := process.React(ctx, squares[sink.Sink[int]](), source.Range(0, 20), sink.Null[int]())
	require.NoError(t, err)
	n, err = drain(ctx, stopped)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestSum(t *testing.T) {
	assert.Equal(t, 6, sum([]int{1, 2, 3}))
	assert.Zero(t, sum(nil))
}
