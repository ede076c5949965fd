// Package sink provides push-style receivers that sit at the end of a
// reactive pipeline.
//
// A Sink accepts items through Send until it answers Stop, and is shut down
// with Close. Stop is flow control, not failure: a sink that can take no
// more items says so through its Ack and keeps the error return for real
// faults.
//
//	store := sink.NewCollecting[int](0)
//	r := process.NewReactive(xf, store.Feeder())
//	source.Push(ctx, source.FromSlice(items), r)
//	results := store.Items()
//
// After Close every Send answers Stop, and further Close calls are no-ops.
package sink
