package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/ports"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

const tracerName = "github.com/Apurer/petstore-e2e/internal/domains/pets/application"

// Reporter receives progress while a run executes.
type Reporter interface {
	CaseStarted(c Case)
	StepFinished(r Result)
}

// Runner executes cases strictly in order, one step at a time. A failed
// step never stops later steps or cases.
type Runner struct {
	store    ports.PetStore
	cases    []Case
	filter   Filter
	reporter Reporter
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  runnerMetrics
	now      func() time.Time
}

type Option func(*Runner)

// WithFilter restricts which cases run; the rest are reported as skipped.
func WithFilter(filter Filter) Option {
	return func(r *Runner) {
		r.filter = filter
	}
}

// WithReporter streams results as they are produced.
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tr
	}
}

// WithMeter injects the meter used to count step outcomes.
func WithMeter(m metric.Meter) Option {
	return func(r *Runner) {
		r.metrics = newRunnerMetrics(m)
	}
}

// NewRunner wires a runner over the given store and ordered cases.
func NewRunner(store ports.PetStore, cases []Case, opts ...Option) *Runner {
	r := &Runner{
		store:   store,
		cases:   append([]Case{}, cases...),
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newRunnerMetrics(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.tracer == nil {
		r.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run executes every case and returns the collected report.
func (r *Runner) Run(ctx context.Context) Report {
	ctx, span := r.tracer.Start(ctx, "Runner.Run", trace.WithAttributes(attribute.Int("suite.cases", len(r.cases))))
	defer span.End()

	report := Report{StartedAt: r.now()}
	for _, c := range r.cases {
		if r.reporter != nil {
			r.reporter.CaseStarted(c)
		}
		if r.filter != nil && !r.filter(c.ID()) {
			r.logger.LogAttrs(ctx, slog.LevelInfo, "case skipped", slog.String("case", c.ID()))
			report.Results = append(report.Results, r.finish(ctx, Result{Seq: c.Seq, Case: c.Name, Skipped: true}))
			continue
		}
		for step, err := range c.Steps {
			if err != nil {
				report.Results = append(report.Results, r.finish(ctx, Result{
					Seq:  c.Seq,
					Case: c.Name,
					Step: step.Name,
					Err:  err,
					Kind: harnesserrors.KindOf(err),
				}))
				continue
			}
			report.Results = append(report.Results, r.runStep(ctx, c, step))
		}
	}
	report.FinishedAt = r.now()

	passed, failed, skipped := report.Counts()
	span.SetAttributes(
		attribute.Int("suite.passed", passed),
		attribute.Int("suite.failed", failed),
		attribute.Int("suite.skipped", skipped),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "suite failed")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "suite finished",
		slog.Int("passed", passed),
		slog.Int("failed", failed),
		slog.Int("skipped", skipped),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (r *Runner) runStep(ctx context.Context, c Case, step Step) Result {
	result := Result{Seq: c.Seq, Case: c.Name, Step: step.Name}
	ctx, span := r.tracer.Start(ctx, "Runner.Step", trace.WithAttributes(
		attribute.String("suite.case", c.ID()),
		attribute.String("suite.step", result.ID()),
	))
	defer span.End()

	start := r.now()
	if step.Run != nil {
		result.Err = step.Run(ctx, r.store)
	}
	result.Duration = r.now().Sub(start)
	result.Kind = harnesserrors.KindOf(result.Err)
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	}
	return r.finish(ctx, result)
}

func (r *Runner) finish(ctx context.Context, result Result) Result {
	attrs := []slog.Attr{slog.String("step", result.ID()), slog.Duration("duration", result.Duration)}
	switch {
	case result.Skipped:
		r.metrics.record(ctx, "skipped", result.Kind)
	case result.Err != nil:
		r.metrics.record(ctx, "failed", result.Kind)
		attrs = append(attrs, slog.String("kind", string(result.Kind)), slog.String("error", result.Err.Error()))
		r.logger.LogAttrs(ctx, slog.LevelError, "step failed", attrs...)
	default:
		r.metrics.record(ctx, "passed", result.Kind)
		r.logger.LogAttrs(ctx, slog.LevelInfo, "step passed", attrs...)
	}
	if r.reporter != nil {
		r.reporter.StepFinished(result)
	}
	return result
}

type runnerMetrics struct {
	steps metric.Int64Counter
}

func newRunnerMetrics(m metric.Meter) runnerMetrics {
	if m == nil {
		return runnerMetrics{}
	}
	steps, _ := m.Int64Counter("suite.steps", metric.WithDescription("Number of executed steps by outcome"))
	return runnerMetrics{steps: steps}
}

func (m runnerMetrics) record(ctx context.Context, outcome string, kind harnesserrors.Kind) {
	if m.steps == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("suite.outcome", outcome)}
	if kind != harnesserrors.KindNone {
		attrs = append(attrs, attribute.String("suite.failure_kind", string(kind)))
	}
	m.steps.Add(ctx, 1, metric.WithAttributes(attrs...))
}
