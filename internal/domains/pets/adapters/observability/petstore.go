package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/ports"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

const tracerName = "github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/observability"

// PetStore decorates a pet store port with tracing, logging, and metrics.
type PetStore struct {
	inner   ports.PetStore
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics storeMetrics
}

type Option func(*PetStore)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *PetStore) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *PetStore) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create request instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *PetStore) {
		s.metrics = newStoreMetrics(m)
	}
}

// New wires a decorator around the pet store client.
func New(inner ports.PetStore, opts ...Option) ports.PetStore {
	s := &PetStore{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newStoreMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreatePet posts a new pet.
func (s *PetStore) CreatePet(ctx context.Context, pet domain.Pet) (*ports.Response, error) {
	return s.observe(ctx, "PetStore.CreatePet", "create", pet.ID, func(ctx context.Context) (*ports.Response, error) {
		return s.inner.CreatePet(ctx, pet)
	})
}

// GetPet fetches a pet by ID.
func (s *PetStore) GetPet(ctx context.Context, id int64) (*ports.Response, error) {
	return s.observe(ctx, "PetStore.GetPet", "get", id, func(ctx context.Context) (*ports.Response, error) {
		return s.inner.GetPet(ctx, id)
	})
}

// UpdatePet puts the full pet state.
func (s *PetStore) UpdatePet(ctx context.Context, pet domain.Pet) (*ports.Response, error) {
	return s.observe(ctx, "PetStore.UpdatePet", "update", pet.ID, func(ctx context.Context) (*ports.Response, error) {
		return s.inner.UpdatePet(ctx, pet)
	})
}

// DeletePet removes a pet by ID.
func (s *PetStore) DeletePet(ctx context.Context, id int64) (*ports.Response, error) {
	return s.observe(ctx, "PetStore.DeletePet", "delete", id, func(ctx context.Context) (*ports.Response, error) {
		return s.inner.DeletePet(ctx, id)
	})
}

func (s *PetStore) observe(ctx context.Context, spanName, op string, id int64, call func(context.Context) (*ports.Response, error)) (*ports.Response, error) {
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer span.End()

	s.logger.LogAttrs(ctx, slog.LevelDebug, "calling pet store", slog.String("op", op), slog.Int64("pet.id", id))
	resp, err := call(ctx)
	if err != nil {
		kind := harnesserrors.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.recordFailure(ctx, op, kind)
		s.logger.LogAttrs(ctx, slog.LevelError, "pet store call failed",
			slog.String("op", op),
			slog.Int64("pet.id", id),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	s.metrics.recordRequest(ctx, op, resp.StatusCode)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "pet store responded",
		slog.String("op", op),
		slog.Int64("pet.id", id),
		slog.Int("status_code", resp.StatusCode),
	)
	return resp, nil
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type storeMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
}

func newStoreMetrics(m metric.Meter) storeMetrics {
	if m == nil {
		return storeMetrics{}
	}
	requests, _ := m.Int64Counter("petstore.client.requests", metric.WithDescription("Number of pet store calls that got a response"))
	failures, _ := m.Int64Counter("petstore.client.failures", metric.WithDescription("Number of pet store calls that got no response"))
	return storeMetrics{requests: requests, failures: failures}
}

func (m storeMetrics) recordRequest(ctx context.Context, op string, statusCode int) {
	addCounter(ctx, m.requests, 1, attribute.String("petstore.op", op), attribute.Int("http.response.status_code", statusCode))
}

func (m storeMetrics) recordFailure(ctx context.Context, op string, kind harnesserrors.Kind) {
	addCounter(ctx, m.failures, 1, attribute.String("petstore.op", op), attribute.String("petstore.failure_kind", string(kind)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.PetStore = (*PetStore)(nil)
