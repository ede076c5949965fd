package source

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/kbukum/transduce/resilience"
	"github.com/kbukum/transduce/validation"
)

// Poisson delivers the values of src at random times, waiting an
// exponentially distributed pause before each one so that on average rate
// values arrive per second.
func Poisson[T any](src Iterator[T], rate float64) (Iterator[T], error) {
	if err := validation.New().Above("rate", rate, 0).Err(); err != nil {
		return nil, err
	}
	return &poissonIter[T]{src: src, rate: rate, pause: sleep}, nil
}

type poissonIter[T any] struct {
	src   Iterator[T]
	rate  float64
	pause func(context.Context, time.Duration) error
}

func (it *poissonIter[T]) Next(ctx context.Context) (T, bool, error) {
	wait := time.Duration(rand.ExpFloat64() / it.rate * float64(time.Second))
	if err := it.pause(ctx, wait); err != nil {
		var zero T
		return zero, false, err
	}
	return it.src.Next(ctx)
}

func (it *poissonIter[T]) Close() error { return it.src.Close() }

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RateLimited paces src with limiter, taking one token per value.
func RateLimited[T any](src Iterator[T], limiter *resilience.RateLimiter) Iterator[T] {
	return &rateLimitedIter[T]{src: src, limiter: limiter}
}

type rateLimitedIter[T any] struct {
	src     Iterator[T]
	limiter *resilience.RateLimiter
}

func (it *rateLimitedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := it.limiter.Wait(ctx); err != nil {
		var zero T
		return zero, false, err
	}
	return it.src.Next(ctx)
}

func (it *rateLimitedIter[T]) Close() error { return it.src.Close() }
