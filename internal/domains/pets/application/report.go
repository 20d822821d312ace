package application

import (
	"time"

	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

// Result is the outcome of one step.
type Result struct {
	Seq      int
	Case     string
	Step     string
	Skipped  bool
	Err      error
	Kind     harnesserrors.Kind
	Duration time.Duration
}

// ID joins the case ID and step name, e.g. "5-batch-create/row-2".
func (r Result) ID() string {
	id := Case{Seq: r.Seq, Name: r.Case}.ID()
	if r.Step != "" {
		id += "/" + r.Step
	}
	return id
}

// Passed reports whether the step ran and succeeded.
func (r Result) Passed() bool {
	return !r.Skipped && r.Err == nil
}

// Report is the outcome of a full run, in execution order.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Counts tallies passed, failed and skipped steps.
func (r Report) Counts() (passed, failed, skipped int) {
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			skipped++
		case res.Err != nil:
			failed++
		default:
			passed++
		}
	}
	return passed, failed, skipped
}

// Failures returns the failed steps.
func (r Report) Failures() []Result {
	var failures []Result
	for _, res := range r.Results {
		if !res.Skipped && res.Err != nil {
			failures = append(failures, res)
		}
	}
	return failures
}

// OK is false when any step failed.
func (r Report) OK() bool {
	return len(r.Failures()) == 0
}
