package source

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/logger"
	"github.com/kbukum/transduce/resilience"
	"github.com/kbukum/transduce/validation"
)

// Retrying retries failed reads of src according to cfg. Once retries are
// exhausted the last failure is returned as a SOURCE_FAILED error naming
// the source. Cancellation is returned unchanged.
//
// Unless cfg sets OnRetry, each retry is logged at warn level through the
// "source" logger. name is required.
func Retrying[T any](src Iterator[T], name string, cfg resilience.RetryConfig) (Iterator[T], error) {
	if err := validation.New().Required("name", name).Err(); err != nil {
		return nil, err
	}
	if cfg.OnRetry == nil {
		log := logger.Get("source")
		cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
			log.Warn("retrying source read", logger.Fields(
				"source", name,
				"attempt", attempt,
				logger.FieldError, err.Error(),
				"backoff_ms", backoff.Milliseconds(),
			))
		}
	}
	return &retryingIter[T]{src: src, name: name, cfg: cfg}, nil
}

type retryingIter[T any] struct {
	src  Iterator[T]
	name string
	cfg  resilience.RetryConfig
}

type read[T any] struct {
	val T
	ok  bool
}

func (it *retryingIter[T]) Next(ctx context.Context) (T, bool, error) {
	r, err := resilience.Retry(ctx, it.cfg, func() (read[T], error) {
		val, ok, err := it.src.Next(ctx)
		return read[T]{val: val, ok: ok}, err
	})
	if err != nil {
		var zero T
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return zero, false, err
		}
		return zero, false, errors.SourceFailed(it.name, err)
	}
	return r.val, r.ok, nil
}

func (it *retryingIter[T]) Close() error { return it.src.Close() }
