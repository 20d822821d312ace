package e2e

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	reportspostgres "github.com/Apurer/petstore-e2e/internal/domains/reports/adapters/persistence/postgres"
	reportsdomain "github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	reportsports "github.com/Apurer/petstore-e2e/internal/domains/reports/ports"
	"github.com/Apurer/petstore-e2e/internal/platform/migrations"
	platformpostgres "github.com/Apurer/petstore-e2e/internal/platform/postgres"
)

// ErrNoReportStore is returned by History when no database is configured.
var ErrNoReportStore = errors.New("REPORTS_POSTGRES_DSN is not set; run history is only kept in postgres")

// History prints the most recent stored runs.
func History(ctx context.Context, cfg Config, limit int, out io.Writer) error {
	if strings.TrimSpace(cfg.ReportsPostgresDSN) == "" {
		return ErrNoReportStore
	}
	db, err := platformpostgres.Connect(ctx, cfg.ReportsPostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return PrintHistory(ctx, reportspostgres.NewRepository(db), limit, out)
}

// PrintHistory writes one line per run, most recent first.
func PrintHistory(ctx context.Context, repo reportsports.Repository, limit int, out io.Writer) error {
	runs, err := repo.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tPASSED\tFAILED\tSKIPPED\tFAILED STEPS")
	for _, run := range runs {
		writeRunLine(w, run)
	}
	return w.Flush()
}

func writeRunLine(w io.Writer, run *reportsdomain.Run) {
	passed, failed, skipped := run.Counts()
	failedSteps := strings.Join(run.FailedSteps(), ",")
	if failedSteps == "" {
		failedSteps = "-"
	}
	fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), passed, failed, skipped, failedSteps)
}
