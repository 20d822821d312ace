package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/petstore-e2e/internal/app/e2e"
	petsapp "github.com/Apurer/petstore-e2e/internal/domains/pets/application"
)

// flag names
const (
	flagBaseURL      = "base-url"
	flagTimeout      = "timeout"
	flagFixturesDir  = "fixtures-dir"
	flagBatchFixture = "batch-fixture"
	flagRun          = "run"
	flagSkip         = "skip"
	flagNoColor      = "no-color"
	flagLimit        = "limit"
)

// errSuiteFailed makes the process exit non-zero after the report was printed.
var errSuiteFailed = errors.New("suite failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "petstore-e2e",
		Short: "End-to-end CRUD checks against a pet store API",
		Long: `petstore-e2e creates, reads, updates and deletes a pet through the pet store
REST API, then batch-creates pets from a CSV fixture, validating every response.
Settings come from the environment (and an optional .env file); flags override them.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newHistoryCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		baseURL      string
		timeout      time.Duration
		fixturesDir  string
		batchFixture string
		filters      petsapp.RegexFilters
		noColor      bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the suite",
		Long: `Run executes the cases in order: 1-create, 2-read, 3-update, 4-delete and
5-batch-create (one step per CSV row). A failed case never stops later ones.
The command exits non-zero when any step failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := e2e.LoadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed(flagBaseURL) {
				cfg.BaseURL = baseURL
			}
			if flags.Changed(flagTimeout) {
				cfg.RequestTimeout = timeout
			}
			if flags.Changed(flagFixturesDir) {
				cfg.FixturesDir = fixturesDir
			}
			if flags.Changed(flagBatchFixture) {
				cfg.BatchFixture = batchFixture
			}
			if flags.Changed(flagRun) {
				cfg.Filters.MustMatch = filters.MustMatch
			}
			if flags.Changed(flagSkip) {
				cfg.Filters.MustNotMatch = filters.MustNotMatch
			}
			if noColor {
				cfg.NoColor = true
			}

			run, err := e2e.Run(cmd.Context(), cfg, e2e.Streams{Out: cmd.OutOrStdout(), Log: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			if !run.OK() {
				return errSuiteFailed
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&baseURL, flagBaseURL, e2e.DefaultBaseURL, "Base URL of the pet store API (env: PETSTORE_BASE_URL)")
	flags.DurationVar(&timeout, flagTimeout, 5*time.Second, "Per-request timeout (env: PETSTORE_REQUEST_TIMEOUT)")
	flags.StringVar(&fixturesDir, flagFixturesDir, "", "Directory with json/ and csv/ fixtures; embedded fixtures when empty (env: PETSTORE_FIXTURES_DIR)")
	flags.StringVar(&batchFixture, flagBatchFixture, "", "CSV fixture for the batch case, relative to the fixtures directory (env: PETSTORE_BATCH_FIXTURE)")
	flags.Var(&filters.MustMatch, flagRun, "Only run cases whose ID matches this regex; repeatable (env: PETSTORE_RUN, comma separated)")
	flags.Var(&filters.MustNotMatch, flagSkip, "Skip cases whose ID matches this regex; repeatable (env: PETSTORE_SKIP, comma separated)")
	flags.BoolVar(&noColor, flagNoColor, false, "Disable colored output (env: NO_COLOR)")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored runs (requires REPORTS_POSTGRES_DSN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := e2e.LoadConfig()
			if err != nil {
				return err
			}
			return e2e.History(cmd.Context(), cfg, limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&limit, flagLimit, 20, "Maximum number of runs to list; 0 lists all")
	return cmd
}
