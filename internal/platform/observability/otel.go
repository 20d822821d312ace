package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Config selects where logs and spans go.
type Config struct {
	ServiceName  string
	Environment  string
	LogLevel     string
	OTLPEndpoint string
	// LogWriter receives JSON logs. Defaults to stderr; stdout belongs to the console report.
	LogWriter io.Writer
}

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// MetricReader holds the step and request counters for on-demand collection.
	MetricReader *sdkmetric.ManualReader
}

// Init configures slog, OpenTelemetry tracing, and meters for the process.
// It returns initialized instruments plus a shutdown function that should be
// invoked on exit to flush pending spans.
func Init(ctx context.Context, cfg Config) (*Instruments, func(context.Context) error, error) {
	logger := NewLogger(cfg.LogWriter, cfg.LogLevel)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", orDefault(cfg.ServiceName, "petstore-e2e")),
			attribute.String("deployment.environment", orDefault(cfg.Environment, "local")),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	spanExporter, err := newSpanExporter(ctx, logger, cfg.OTLPEndpoint)
	if err != nil {
		return nil, nil, err
	}
	if spanExporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(spanExporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(meterProvider)

	instruments := &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		MetricReader:   reader,
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}

	return instruments, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// CounterTotals collects the manual reader and sums every int64 counter
// across its attribute sets, keyed by instrument name.
func (i *Instruments) CounterTotals(ctx context.Context) (map[string]int64, error) {
	totals := map[string]int64{}
	if i == nil || i.MetricReader == nil {
		return totals, nil
	}
	var rm metricdata.ResourceMetrics
	if err := i.MetricReader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals, nil
}

// LogCounters writes the counter totals as one debug record.
func (i *Instruments) LogCounters(ctx context.Context) {
	if i == nil || i.Logger == nil {
		return
	}
	totals, err := i.CounterTotals(ctx)
	if err != nil {
		i.Logger.Warn("failed to collect metrics", slog.String("error", err.Error()))
		return
	}
	attrs := make([]slog.Attr, 0, len(totals))
	for name, total := range totals {
		attrs = append(attrs, slog.Int64(name, total))
	}
	slices.SortFunc(attrs, func(a, b slog.Attr) int { return strings.Compare(a.Key, b.Key) })
	i.Logger.LogAttrs(ctx, slog.LevelDebug, "run metrics", attrs...)
}

// NewLogger builds the process JSON logger and installs it as the slog default.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level), AddSource: true})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// newSpanExporter returns nil when no collector is configured so spans are
// dropped instead of cluttering the terminal.
func newSpanExporter(ctx context.Context, logger *slog.Logger, endpoint string) (sdktrace.SpanExporter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, nil
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stderr", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
