package e2e

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petsapp "github.com/Apurer/petstore-e2e/internal/domains/pets/application"
	reportsmemory "github.com/Apurer/petstore-e2e/internal/domains/reports/adapters/memory"
	reportsdomain "github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	"github.com/Apurer/petstore-e2e/internal/petstoretest"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

func TestRun_AgainstDouble(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	var out bytes.Buffer
	run, err := Run(context.Background(), Config{
		BaseURL:        server.URL + petstoretest.BasePath,
		RequestTimeout: time.Second,
		NoColor:        true,
	}, Streams{Out: &out, Log: io.Discard})
	require.NoError(t, err)

	assert.True(t, run.OK(), out.String())
	assert.NotEmpty(t, run.ID)
	assert.Len(t, run.Results, 8)
	assert.Contains(t, out.String(), "[1-create]")
	assert.Contains(t, out.String(), "PASS 8 passed, 0 failed, 0 skipped")
}

func TestRun_ReportsFailuresWithoutError(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	cfg := Config{BaseURL: server.URL + petstoretest.BasePath, RequestTimeout: time.Second, NoColor: true}
	require.NoError(t, cfg.Filters.MustNotMatch.Set("^1-create$"))

	var out bytes.Buffer
	run, err := Run(context.Background(), cfg, Streams{Out: &out, Log: io.Discard})
	require.NoError(t, err)
	assert.False(t, run.OK())
	assert.Equal(t, []string{"2-read"}, run.FailedSteps())
	assert.Contains(t, out.String(), "Some cases will be skipped")
}

func TestRun_LogsCounterTotals(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	var logs bytes.Buffer
	_, err := Run(context.Background(), Config{
		BaseURL:        server.URL + petstoretest.BasePath,
		RequestTimeout: time.Second,
		LogLevel:       "debug",
		NoColor:        true,
	}, Streams{Out: io.Discard, Log: &logs})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"msg":"run metrics"`)
	assert.Contains(t, logs.String(), `"petstore.client.requests":8`)
}

func TestRun_InvalidConfig(t *testing.T) {
	_, err := Run(context.Background(), Config{}, Streams{Out: io.Discard, Log: io.Discard})
	require.Error(t, err)
}

func TestToRun(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	run := toRun("id-1", "http://petstore/v2", petsapp.Report{
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
		Results: []petsapp.Result{
			{Seq: 1, Case: "create", Duration: time.Millisecond},
			{Seq: 2, Case: "read", Err: errors.New("boom"), Kind: harnesserrors.KindUnknown},
			{Seq: 5, Case: "batch-create", Skipped: true},
		},
	})
	require.NoError(t, run.Validate())
	assert.Equal(t, reportsdomain.OutcomePassed, run.Results[0].Outcome)
	assert.Equal(t, reportsdomain.OutcomeFailed, run.Results[1].Outcome)
	assert.Equal(t, "boom", run.Results[1].Message)
	assert.Equal(t, "unknown", run.Results[1].Kind)
	assert.Equal(t, reportsdomain.OutcomeSkipped, run.Results[2].Outcome)
}

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	repo := reportsmemory.NewRepository()

	var out bytes.Buffer
	require.NoError(t, PrintHistory(ctx, repo, 10, &out))
	assert.Equal(t, "no runs recorded\n", out.String())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &reportsdomain.Run{
		ID:        "run-1",
		StartedAt: start,
		Results: []reportsdomain.CaseResult{
			{Seq: 1, Case: "create", Outcome: reportsdomain.OutcomePassed},
			{Seq: 2, Case: "read", Outcome: reportsdomain.OutcomeFailed},
		},
	}))
	out.Reset()
	require.NoError(t, PrintHistory(ctx, repo, 10, &out))
	assert.Contains(t, out.String(), "FAILED STEPS")
	assert.Contains(t, out.String(), "run-1")
	assert.Contains(t, out.String(), "2024-01-01T00:00:00Z")
	assert.Contains(t, out.String(), "2-read")
}

func TestHistory_RequiresDSN(t *testing.T) {
	err := History(context.Background(), Config{}, 5, io.Discard)
	assert.ErrorIs(t, err, ErrNoReportStore)
}
