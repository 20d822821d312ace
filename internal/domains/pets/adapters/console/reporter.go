package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/application"
)

// Reporter prints progress lines as steps finish and a summary at the end.
type Reporter struct {
	out  io.Writer
	pass *color.Color
	fail *color.Color
	skip *color.Color
	dim  *color.Color
}

type Option func(*Reporter)

// WithWriter redirects output; the default is stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		r.out = w
	}
}

// WithoutColor disables ANSI sequences regardless of the terminal.
func WithoutColor() Option {
	return func(r *Reporter) {
		for _, c := range []*color.Color{r.pass, r.fail, r.skip, r.dim} {
			c.DisableColor()
		}
	}
}

func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		out:  os.Stdout,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		skip: color.New(color.FgYellow),
		dim:  color.New(color.Faint),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Reporter) CaseStarted(c application.Case) {
	fmt.Fprintf(r.out, "[%s]\n", c.ID())
}

func (r *Reporter) StepFinished(res application.Result) {
	switch {
	case res.Skipped:
		fmt.Fprintf(r.out, "  %s %s\n", r.skip.Sprint("SKIP"), res.ID())
	case res.Err != nil:
		fmt.Fprintf(r.out, "  %s %s %s\n", r.fail.Sprint("✗"), res.ID(), r.dim.Sprintf("(%s)", res.Kind))
		for _, line := range strings.Split(res.Err.Error(), "\n") {
			fmt.Fprintf(r.out, "      %s\n", line)
		}
	default:
		fmt.Fprintf(r.out, "  %s %s %s\n", r.pass.Sprint("✓"), res.ID(), r.dim.Sprint(res.Duration.Round(time.Millisecond)))
	}
}

// Summary prints the totals and lists every failure again.
func (r *Reporter) Summary(report application.Report) {
	passed, failed, skipped := report.Counts()
	fmt.Fprintln(r.out)
	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprintln(r.out, r.fail.Sprint("FAILED:"))
		for _, f := range failures {
			fmt.Fprintf(r.out, "  %s: %s\n", f.ID(), f.Err)
		}
		fmt.Fprintln(r.out)
	}
	status := r.pass.Sprint("PASS")
	if failed > 0 {
		status = r.fail.Sprint("FAIL")
	}
	fmt.Fprintf(r.out, "%s %d passed, %d failed, %d skipped in %s\n",
		status, passed, failed, skipped, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

var _ application.Reporter = (*Reporter)(nil)
