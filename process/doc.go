// Package process runs transducers over sources. Each driver applies the
// transducer to the reducer once per run (once per partition for
// Parallel), seeds it, steps items until the source runs dry or a stage
// ends the run early, and completes it exactly once.
//
//   - Transduce: eager pull over a source.Iterator
//   - Lazy: pull that yields output items one at a time
//   - Reactive / React: push, driven by whoever calls Send
//   - Parallel: partition, reduce partitions concurrently, combine in order
//   - Cooperative: eager pull over a channel, yielding between steps
//
// A failing step or source aborts the run without calling Complete; the
// error is returned as is. Cancellation of ctx is reported as CANCELED.
//
// Every run is logged at debug level through the "process" logger with a
// run_id, and recorded as an OpenTelemetry span plus run metrics when
// WithMetrics is given.
package process
