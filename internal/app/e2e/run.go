package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/petstore-e2e/internal/clients/http/petstore"
	petsconsole "github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/console"
	petsobs "github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/petstore-e2e/internal/domains/pets/application"
	reportsmemory "github.com/Apurer/petstore-e2e/internal/domains/reports/adapters/memory"
	reportspostgres "github.com/Apurer/petstore-e2e/internal/domains/reports/adapters/persistence/postgres"
	reportsdomain "github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	reportsports "github.com/Apurer/petstore-e2e/internal/domains/reports/ports"
	"github.com/Apurer/petstore-e2e/internal/platform/migrations"
	platformobservability "github.com/Apurer/petstore-e2e/internal/platform/observability"
	platformpostgres "github.com/Apurer/petstore-e2e/internal/platform/postgres"
)

const serviceName = "petstore-e2e"

// Streams are where a run writes. Out gets the console report, Log the JSON logs.
type Streams struct {
	Out io.Writer
	Log io.Writer
}

func (s Streams) withDefaults() Streams {
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Log == nil {
		s.Log = os.Stderr
	}
	return s
}

// Run executes the suite against cfg.BaseURL, prints the console report and
// stores the run. The returned error covers setup problems only; failed
// steps are reported through the returned run.
func Run(ctx context.Context, cfg Config, streams Streams) (*reportsdomain.Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	streams = streams.withDefaults()

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		LogWriter:    streams.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := instruments.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	petsCfg, err := cfg.PetsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	client, err := petstore.NewClient(cfg.BaseURL, petstore.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, err
	}
	store := petsobs.New(
		client,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.adapters.observability")),
		petsobs.WithMeter(instruments.Meter("internal.pets.adapters.observability")),
	)

	reporterOpts := []petsconsole.Option{petsconsole.WithWriter(streams.Out)}
	if cfg.NoColor {
		reporterOpts = append(reporterOpts, petsconsole.WithoutColor())
	}
	reporter := petsconsole.NewReporter(reporterOpts...)
	if desc := cfg.Filters.Describe(); desc != "" {
		fmt.Fprintf(streams.Out, "Some cases will be skipped: %s\n\n", desc)
	}

	runner := petsapp.NewRunner(store, petsapp.Cases(petsCfg),
		petsapp.WithFilter(cfg.Filters.AsFilter),
		petsapp.WithReporter(reporter),
		petsapp.WithLogger(logger),
		petsapp.WithTracer(instruments.Tracer("internal.pets.application")),
		petsapp.WithMeter(instruments.Meter("internal.pets.application")),
	)
	logger.Info("running suite", slog.String("base_url", client.BaseURL()), slog.Duration("timeout", cfg.RequestTimeout))
	report := runner.Run(ctx)
	reporter.Summary(report)
	instruments.LogCounters(ctx)

	run := toRun(uuid.NewString(), client.BaseURL(), report)
	repo, cleanup := buildRunRepository(ctx, cfg.ReportsPostgresDSN, logger)
	defer cleanup()
	if err := repo.Save(ctx, run); err != nil {
		logger.Warn("failed to store run report", slog.String("run_id", run.ID), slog.String("error", err.Error()))
	} else {
		logger.Info("run report stored", slog.String("run_id", run.ID))
	}
	return run, nil
}

func buildRunRepository(ctx context.Context, dsn string, logger *slog.Logger) (reportsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, dsn, logger)
	if db == nil {
		return reportsmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, keeping run reports in memory", slog.String("error", err.Error()))
		cleanup()
		return reportsmemory.NewRepository(), func() {}
	}
	return reportspostgres.NewRepository(db), cleanup
}

func toRun(id, baseURL string, report petsapp.Report) *reportsdomain.Run {
	run := &reportsdomain.Run{
		ID:         id,
		BaseURL:    baseURL,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Results:    make([]reportsdomain.CaseResult, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		cr := reportsdomain.CaseResult{
			Seq:      res.Seq,
			Case:     res.Case,
			Step:     res.Step,
			Outcome:  reportsdomain.OutcomePassed,
			Duration: res.Duration,
		}
		switch {
		case res.Skipped:
			cr.Outcome = reportsdomain.OutcomeSkipped
		case res.Err != nil:
			cr.Outcome = reportsdomain.OutcomeFailed
			cr.Kind = string(res.Kind)
			cr.Message = res.Err.Error()
		}
		run.Results = append(run.Results, cr)
	}
	return run
}
