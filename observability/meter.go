package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/transduce/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the transducible process drivers.
// All methods are no-ops on a nil receiver.
type Metrics struct {
	runTotal          metric.Int64Counter
	runDuration       metric.Float64Histogram
	runActive         metric.Int64UpDownCounter
	itemTotal         metric.Int64Counter
	terminationTotal  metric.Int64Counter
	partitionTotal    metric.Int64Counter
	partitionSize     metric.Int64Histogram
	partitionDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	if m.runTotal, err = meter.Int64Counter("transduce.run.total",
		metric.WithDescription("Completed reductions by driver and status"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.run.total counter: %w", err)
	}
	if m.runDuration, err = meter.Float64Histogram("transduce.run.duration",
		metric.WithDescription("Duration of reductions in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.run.duration histogram: %w", err)
	}
	if m.runActive, err = meter.Int64UpDownCounter("transduce.run.active",
		metric.WithDescription("Reductions currently in progress"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.run.active gauge: %w", err)
	}
	if m.itemTotal, err = meter.Int64Counter("transduce.item.total",
		metric.WithDescription("Source items stepped through a pipeline"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.item.total counter: %w", err)
	}
	if m.terminationTotal, err = meter.Int64Counter("transduce.early_termination.total",
		metric.WithDescription("Reductions ended by a stage before the source was exhausted"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.early_termination.total counter: %w", err)
	}
	if m.partitionTotal, err = meter.Int64Counter("transduce.partition.total",
		metric.WithDescription("Partitions reduced by the parallel driver"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.partition.total counter: %w", err)
	}
	if m.partitionSize, err = meter.Int64Histogram("transduce.partition.size",
		metric.WithDescription("Items per partition"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.partition.size histogram: %w", err)
	}
	if m.partitionDuration, err = meter.Float64Histogram("transduce.partition.duration",
		metric.WithDescription("Duration of partition reductions in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.partition.duration histogram: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("transduce.error.total",
		metric.WithDescription("Failed reductions by error code and driver"),
	); err != nil {
		return nil, fmt.Errorf("creating transduce.error.total counter: %w", err)
	}

	return &m, nil
}

// RecordRunStart increments the active run count.
func (m *Metrics) RecordRunStart(ctx context.Context, driver string) {
	if m == nil {
		return
	}
	m.runActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrDriver, driver)))
}

// RecordRunEnd decrements active runs and records the finished run.
func (m *Metrics) RecordRunEnd(ctx context.Context, driver, status string, items int, reduced bool, duration time.Duration) {
	if m == nil {
		return
	}
	driverAttr := attribute.String(AttrDriver, driver)
	m.runActive.Add(ctx, -1, metric.WithAttributes(driverAttr))
	m.runTotal.Add(ctx, 1, metric.WithAttributes(driverAttr, attribute.String(AttrStatus, status)))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(driverAttr))
	m.itemTotal.Add(ctx, int64(items), metric.WithAttributes(driverAttr))
	if reduced {
		m.terminationTotal.Add(ctx, 1, metric.WithAttributes(driverAttr))
	}
}

// RecordPartition records one partition reduced by the parallel driver.
func (m *Metrics) RecordPartition(ctx context.Context, size int, duration time.Duration) {
	if m == nil {
		return
	}
	m.partitionTotal.Add(ctx, 1)
	m.partitionSize.Record(ctx, int64(size))
	m.partitionDuration.Record(ctx, duration.Seconds())
}

// RecordError records a failed run by error code and driver.
func (m *Metrics) RecordError(ctx context.Context, code, driver string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String(AttrDriver, driver),
	))
}
