package domain

import (
	"errors"
	"strconv"
	"time"
)

// Outcome of a single step.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

var (
	ErrMissingRunID   = errors.New("run id is required")
	ErrInvalidOutcome = errors.New("case result outcome is invalid")
)

// CaseResult is the stored outcome of one step of a run.
type CaseResult struct {
	Seq      int
	Case     string
	Step     string
	Outcome  Outcome
	Kind     string
	Message  string
	Duration time.Duration
}

// StepID mirrors the identifier printed by the console reporter.
func (c CaseResult) StepID() string {
	id := strconv.Itoa(c.Seq) + "-" + c.Case
	if c.Step != "" {
		id += "/" + c.Step
	}
	return id
}

// Run is a persisted record of one suite execution.
type Run struct {
	ID         string
	BaseURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []CaseResult
}

// Validate enforces invariants on the aggregate.
func (r *Run) Validate() error {
	if r.ID == "" {
		return ErrMissingRunID
	}
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomePassed, OutcomeFailed, OutcomeSkipped:
		default:
			return ErrInvalidOutcome
		}
	}
	return nil
}

// Counts tallies results by outcome.
func (r *Run) Counts() (passed, failed, skipped int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomePassed:
			passed++
		case OutcomeFailed:
			failed++
		case OutcomeSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

// FailedSteps lists the step IDs that failed, in execution order.
func (r *Run) FailedSteps() []string {
	steps := []string{}
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			steps = append(steps, res.StepID())
		}
	}
	return steps
}

func (r *Run) OK() bool {
	_, failed, _ := r.Counts()
	return failed == 0
}

// Clone returns a deep copy.
func (r *Run) Clone() *Run {
	clone := *r
	clone.Results = append([]CaseResult(nil), r.Results...)
	return &clone
}
