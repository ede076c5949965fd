// Package transducer implements the reduction protocol and the library of
// composable transformation stages.
//
// A Reducer folds items into an accumulator through Init, Step and Complete.
// A Transducer turns a downstream reducer into an upstream one, so stages
// stack without knowing where items come from or where results go:
//
//	xf := transducer.Compose(
//	    transducer.Mapping[[]int](func(x int) int { return x * x }),
//	    transducer.Filtering[[]int](func(x int) bool { return x%5 != 0 }),
//	    transducer.Must(transducer.Taking[[]int, int](6)),
//	)
//	out, err := process.TransduceSlice(ctx, xf, reducers.Appending[int](), items)
//
// Any Step may end the run early by returning Reduced. Drivers stop feeding
// items as soon as they see a reduced result and then call Complete exactly
// once. Stages that hold items back (batching, windowing, ordering and the
// like) emit them from Complete, never stepping a downstream that has
// already asked to stop.
//
// Stage state lives in the reducer built when a transducer is applied, so
// applying the same Transducer twice yields two independent pipelines.
package transducer
