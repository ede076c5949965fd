// Command transduce runs the demonstration pipelines of the transduce
// library through every driver and prints their results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/transduce/config"
	"github.com/kbukum/transduce/logger"
	"github.com/kbukum/transduce/observability"
	"github.com/kbukum/transduce/process"
	"github.com/kbukum/transduce/reducers"
	"github.com/kbukum/transduce/resilience"
	"github.com/kbukum/transduce/sink"
	"github.com/kbukum/transduce/source"
	"github.com/kbukum/transduce/transducer"
)

const serviceName = "transduce"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("transduce failed", logger.ErrorFields("run", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg config.Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(&cfg.Logging)
	logger.RegisterDefaults("process", "source", "sink")
	log := logger.WithComponent("main")

	metrics, shutdown, err := setupTelemetry(ctx, &cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	opts := []process.Option{process.WithMetrics(metrics)}
	out := sink.Printing[int](os.Stdout, sink.WithSeparator(" "), sink.WithEnd("\n"))

	// Eager.
	eager, err := process.TransduceSlice(ctx, squares[[]int](), reducers.Appending[int](), rangeInts(20), opts...)
	if err != nil {
		return err
	}
	fmt.Println("eager:", eager)

	// Lazy over a rate-limited source.
	limiter := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "demo", Rate: 200, Burst: 5})
	lazy, err := source.Collect(ctx, process.Lazy(ctx, squares[[]int](), source.RateLimited(source.Range(0, 20), limiter), opts...))
	if err != nil {
		return err
	}
	fmt.Println("lazy:", lazy)

	// Reactive, printing as items arrive.
	fmt.Print("reactive: ")
	rest, err := process.React(ctx, squares[sink.Sink[int]](), source.Range(0, 20), out, opts...)
	if err != nil {
		return err
	}
	remaining, err := drain(ctx, rest)
	if err != nil {
		return err
	}
	log.Info("reactive run ended", logger.Fields("remaining", remaining))

	// Parallel sum of squares.
	square := transducer.Mapping[int](func(x int) int { return x * x })
	total, err := process.Parallel(ctx, square, reducers.Summing[int](), source.Range(0, 10_000),
		append(process.ParallelOptions(cfg.Parallel), opts...)...)
	if err != nil {
		return err
	}
	fmt.Println("parallel:", total)

	// Cooperative over a channel fed by another goroutine.
	ch := make(chan int)
	go func() {
		defer close(ch)
		for i := range 20 {
			select {
			case ch <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	coop, err := process.Cooperative(ctx, transducer.Must(transducer.Batching[[][]int, int](6)), reducers.Appending[[]int](), ch, opts...)
	if err != nil {
		return err
	}
	fmt.Println("cooperative:", coop)

	// Sliding sums over Poisson-timed readings.
	readings, err := source.Poisson(source.Range(1, 13), 50)
	if err != nil {
		return err
	}
	windows := transducer.Chain(
		transducer.Must(transducer.Windowing[sink.Sink[int], int](3)),
		transducer.Mapping[sink.Sink[int]](func(w []int) int { return sum(w) }),
	)
	fmt.Print("windowed: ")
	if _, err := process.React(ctx, windows, readings,
		sink.Printing[int](os.Stdout, sink.WithSeparator(" "), sink.WithEnd("\n")), opts...); err != nil {
		return err
	}
	return nil
}

// squares is map(x²) → filter(x%5≠0) → taking(6) → dropping_while(x<15) → distinct.
func squares[R any]() transducer.Transducer[R, int, int] {
	return transducer.Compose(
		transducer.Mapping[R](func(x int) int { return x * x }),
		transducer.Filtering[R](func(x int) bool { return x%5 != 0 }),
		transducer.Must(transducer.Taking[R, int](6)),
		transducer.DroppingWhile[R](func(x int) bool { return x < 15 }),
		transducer.Distinct[R, int](),
	)
}

func setupTelemetry(ctx context.Context, cfg *config.Config) (*observability.Metrics, func(), error) {
	if !cfg.Telemetry.Enabled {
		metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter(serviceName))
		return metrics, func() {}, err
	}

	meterCfg := observability.DefaultMeterConfig(cfg.Name)
	meterCfg.ServiceVersion = cfg.Version
	meterCfg.Environment = cfg.Environment
	meterCfg.Endpoint = cfg.Telemetry.Endpoint
	meterCfg.Insecure = cfg.Telemetry.Insecure
	mp, err := observability.InitMeter(ctx, &meterCfg)
	if err != nil {
		return nil, nil, err
	}

	tracerCfg := observability.DefaultTracerConfig(cfg.Name)
	tracerCfg.ServiceVersion = cfg.Version
	tracerCfg.Environment = cfg.Environment
	tracerCfg.Endpoint = cfg.Telemetry.Endpoint
	tracerCfg.Insecure = cfg.Telemetry.Insecure
	tp, err := observability.InitTracer(ctx, &tracerCfg)
	if err != nil {
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}

	metrics, err := observability.NewMetrics(mp.Meter(serviceName))
	if err != nil {
		_ = mp.Shutdown(ctx)
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	return metrics, func() {
		shutdownCtx := context.WithoutCancel(ctx)
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}, nil
}

// drain counts what a push run left unread. A nil remainder means the
// source ran dry.
func drain[T any](ctx context.Context, rest source.Iterator[T]) (int, error) {
	if rest == nil {
		return 0, nil
	}
	left, err := source.Collect(ctx, rest)
	return len(left), err
}

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
