package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/application"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

func TestReporter_Output(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(WithWriter(&out), WithoutColor())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	failure := &harnesserrors.ValidationFailure{Field: "status", Expected: "sold", Actual: "available"}
	report := application.Report{
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		Results: []application.Result{
			{Seq: 1, Case: "create", Duration: 12 * time.Millisecond},
			{Seq: 3, Case: "update", Err: failure, Kind: harnesserrors.KindValidation},
			{Seq: 5, Case: "batch-create", Skipped: true},
		},
	}

	r.CaseStarted(application.Case{Seq: 1, Name: "create"})
	for _, res := range report.Results {
		r.StepFinished(res)
	}
	r.Summary(report)

	assert.Equal(t, `[1-create]
  ✓ 1-create 12ms
  ✗ 3-update (validation_failure)
      validation failure: status: expected "sold", got "available"
  SKIP 5-batch-create

FAILED:
  3-update: validation failure: status: expected "sold", got "available"

FAIL 1 passed, 1 failed, 1 skipped in 1.5s
`, out.String())
}

func TestReporter_PassingSummary(t *testing.T) {
	var out bytes.Buffer
	NewReporter(WithWriter(&out), WithoutColor()).Summary(application.Report{
		Results: []application.Result{{Seq: 1, Case: "create"}},
	})
	assert.Equal(t, "\nPASS 1 passed, 0 failed, 0 skipped in 0s\n", out.String())
}
