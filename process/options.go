package process

import (
	"fmt"
	"reflect"

	"github.com/kbukum/transduce/config"
	"github.com/kbukum/transduce/errors"
	"github.com/kbukum/transduce/logger"
	"github.com/kbukum/transduce/observability"
	"github.com/kbukum/transduce/transducer"
)

// Option configures a driver run.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
	runID   string
	workers int
	policy  transducer.PartitionPolicy
	init    any
	hasInit bool
}

func newOptions(opts []Option) *options {
	o := &options{
		log:    logger.Get("process"),
		policy: transducer.DefaultPartitionPolicy(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger run lifecycle events are written to.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records run, partition and error metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithInit seeds the run with seed instead of the reducer's Init. For
// Parallel it seeds the combine step; partitions always start from Init.
// The seed's type must match the accumulator type.
func WithInit[R any](seed R) Option {
	return func(o *options) {
		o.init = seed
		o.hasInit = true
	}
}

// WithWorkers bounds how many partitions Parallel reduces at once. Zero or
// less means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithPartitionPolicy sets how Parallel sizes partitions.
func WithPartitionPolicy(p transducer.PartitionPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// ParallelOptions turns loaded configuration into Parallel options.
func ParallelOptions(cfg config.ParallelConfig) []Option {
	return []Option{
		WithWorkers(cfg.Workers),
		WithPartitionPolicy(transducer.GeometricPolicy{
			Initial: cfg.Partition.Initial,
			Factor:  cfg.Partition.Factor,
			Max:     cfg.Partition.Max,
		}),
	}
}

// seed returns the first accumulator for r.
func seed[R, T any](o *options, r transducer.Reducer[R, T]) (R, error) {
	if !o.hasInit {
		return r.Init(), nil
	}
	var zero R
	if o.init == nil {
		return zero, nil
	}
	v, ok := o.init.(R)
	if !ok {
		return zero, errors.InvalidArgument("init", fmt.Sprintf(
			"seed of type %T does not match accumulator type %s", o.init, reflect.TypeFor[R]()))
	}
	return v, nil
}
