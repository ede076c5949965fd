// Package source provides the inputs that drivers pull from or push out of.
//
// Iterator is the pull-side contract shared by every driver:
//
//	it := source.FromSlice([]int{1, 2, 3})
//	defer it.Close()
//	for {
//	    v, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    ...
//	}
//
// Adapters wrap an Iterator with extra behaviour without changing its
// shape:
//
//   - Buffered: read ahead on a goroutine through a buffered channel
//   - Poisson: deliver items after exponentially distributed pauses
//   - RateLimited: pace items with a token bucket
//   - Retrying: retry failed reads with backoff, then fail as SOURCE_FAILED
//
// Push turns any Iterator into a push source for a sink.Sink, closing the
// sink exactly once when the iterator runs dry or the sink answers Stop.
package source
