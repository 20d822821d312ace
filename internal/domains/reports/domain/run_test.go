package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() *Run {
	return &Run{
		ID: "run-1",
		Results: []CaseResult{
			{Seq: 1, Case: "create", Outcome: OutcomePassed},
			{Seq: 2, Case: "read", Outcome: OutcomeFailed, Kind: "validation_failure"},
			{Seq: 5, Case: "batch-create", Step: "row-3", Outcome: OutcomeFailed},
			{Seq: 5, Case: "batch-create", Step: "row-4", Outcome: OutcomeSkipped},
		},
	}
}

func TestRun_Counts(t *testing.T) {
	run := sampleRun()
	passed, failed, skipped := run.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, skipped)
	assert.False(t, run.OK())
	assert.Equal(t, []string{"2-read", "5-batch-create/row-3"}, run.FailedSteps())
}

func TestRun_Validate(t *testing.T) {
	require.NoError(t, sampleRun().Validate())

	missing := sampleRun()
	missing.ID = ""
	assert.ErrorIs(t, missing.Validate(), ErrMissingRunID)

	bad := sampleRun()
	bad.Results[0].Outcome = "flaky"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidOutcome)
}

func TestRun_CloneIsIndependent(t *testing.T) {
	run := sampleRun()
	clone := run.Clone()
	clone.Results[0].Outcome = OutcomeFailed
	assert.Equal(t, OutcomePassed, run.Results[0].Outcome)
}
