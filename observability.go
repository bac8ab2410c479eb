package userstore

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/arllen133/userstore"
	meterName  = "github.com/arllen133/userstore"
)

// Metrics holds the OpenTelemetry metric instruments
type Metrics struct {
	OpCount    metric.Int64Counter
	OpDuration metric.Float64Histogram
	OpErrors   metric.Int64Counter
}

// ObservabilityConfig holds logging, tracing, and metrics configuration
type ObservabilityConfig struct {
	Logger          *slog.Logger
	Tracer          trace.Tracer
	Meter           metric.Meter
	Metrics         *Metrics
	SlowOpThreshold time.Duration
	LogOperations   bool // Log every operation (debug mode)
}

func defaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		SlowOpThreshold: 200 * time.Millisecond,
	}
}

// Option configures a Repository
type Option func(*Repository)

// WithLogger sets the logger for the repository
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.obs.Logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer for the repository
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Repository) {
		r.obs.Tracer = tracer
	}
}

// WithDefaultTracer uses the global OpenTelemetry tracer
func WithDefaultTracer() Option {
	return func(r *Repository) {
		r.obs.Tracer = otel.Tracer(tracerName)
	}
}

// WithMeter sets the OpenTelemetry meter for metrics
func WithMeter(meter metric.Meter) Option {
	return func(r *Repository) {
		r.obs.Meter = meter
		r.obs.Metrics = initMetrics(meter)
	}
}

// WithDefaultMeter uses the global OpenTelemetry meter
func WithDefaultMeter() Option {
	return func(r *Repository) {
		meter := otel.Meter(meterName)
		r.obs.Meter = meter
		r.obs.Metrics = initMetrics(meter)
	}
}

func initMetrics(meter metric.Meter) *Metrics {
	opCount, _ := meter.Int64Counter("userstore.op.count",
		metric.WithDescription("Total number of store operations executed"),
		metric.WithUnit("{operation}"),
	)

	opDuration, _ := meter.Float64Histogram("userstore.op.duration",
		metric.WithDescription("Store operation duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)

	opErrors, _ := meter.Int64Counter("userstore.op.errors",
		metric.WithDescription("Total number of failed store operations"),
		metric.WithUnit("{error}"),
	)

	return &Metrics{
		OpCount:    opCount,
		OpDuration: opDuration,
		OpErrors:   opErrors,
	}
}

// WithSlowOpThreshold sets the duration above which operations log a warning
func WithSlowOpThreshold(d time.Duration) Option {
	return func(r *Repository) {
		r.obs.SlowOpThreshold = d
	}
}

// WithOperationLogging enables a debug line for every operation
func WithOperationLogging(enabled bool) Option {
	return func(r *Repository) {
		r.obs.LogOperations = enabled
	}
}

// spanWrapper wraps a trace.Span to handle nil spans gracefully
type spanWrapper struct {
	span trace.Span
}

func (w spanWrapper) End() {
	if w.span != nil {
		w.span.End()
	}
}

func (w spanWrapper) RecordError(err error) {
	if w.span != nil {
		w.span.RecordError(err)
	}
}

func (w spanWrapper) SetStatus(code codes.Code, description string) {
	if w.span != nil {
		w.span.SetStatus(code, description)
	}
}

func (w spanWrapper) SetAttributes(kv ...attribute.KeyValue) {
	if w.span != nil {
		w.span.SetAttributes(kv...)
	}
}

// operation tracks one repository call from start to finish.
type operation struct {
	repo  *Repository
	name  string
	start time.Time
	span  spanWrapper
}

// begin starts a span (if tracing is enabled) and the operation clock.
func (r *Repository) begin(ctx context.Context, name string) (context.Context, *operation) {
	op := &operation{repo: r, name: name, start: time.Now()}
	if r.obs.Tracer != nil {
		var span trace.Span
		ctx, span = r.obs.Tracer.Start(ctx, "userstore."+name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", r.system),
				attribute.String("db.collection.name", r.collection),
				attribute.String("db.operation.name", name),
			),
		)
		op.span = spanWrapper{span}
	}
	return ctx, op
}

// end records the outcome of the operation; affected is the number of
// records returned or written.
func (op *operation) end(ctx context.Context, affected int64, err error) {
	duration := time.Since(op.start)

	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	} else {
		op.span.SetAttributes(attribute.Int64("userstore.affected", affected))
	}
	op.span.End()

	op.repo.recordMetrics(ctx, op.name, duration, err)
	op.repo.logOperation(ctx, op.name, affected, duration, err)
}

// recordMetrics records operation metrics if metrics are enabled
func (r *Repository) recordMetrics(ctx context.Context, name string, duration time.Duration, err error) {
	if r.obs.Metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("db.operation.name", name),
		attribute.String("db.system", r.system),
	)

	r.obs.Metrics.OpCount.Add(ctx, 1, attrs)
	r.obs.Metrics.OpDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		r.obs.Metrics.OpErrors.Add(ctx, 1, attrs)
	}
}

// logOperation logs an operation
func (r *Repository) logOperation(ctx context.Context, name string, affected int64, duration time.Duration, err error) {
	if r.obs.Logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", name),
		slog.String("collection", r.collection),
		slog.Duration("duration", duration),
	}

	if err != nil {
		r.obs.Logger.LogAttrs(ctx, slog.LevelError, "operation failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}

	attrs = append(attrs, slog.Int64("affected", affected))

	if duration > r.obs.SlowOpThreshold {
		r.obs.Logger.LogAttrs(ctx, slog.LevelWarn, "slow operation", attrs...)
		return
	}

	if r.obs.LogOperations {
		r.obs.Logger.LogAttrs(ctx, slog.LevelDebug, "operation executed", attrs...)
	}
}
