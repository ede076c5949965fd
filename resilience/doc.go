// Package resilience holds the fault-handling helpers used around, never
// inside, a reduction:
//
//   - Retry: retries a failed source pull with exponential backoff
//   - RateLimiter: paces a source with a token bucket
//   - Bulkhead: bounds how many partitions the parallel driver runs at once
//
// The core never retries; these are wired in by source adapters and drivers:
//
//	it, err := source.Retrying(flaky, "sensor", resilience.DefaultRetryConfig())
//	it = source.RateLimited(it, resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 50, Burst: 1}))
package resilience
