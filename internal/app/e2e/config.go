package e2e

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/petstore-e2e/internal/clients/http/petstore"
	petsapp "github.com/Apurer/petstore-e2e/internal/domains/pets/application"
)

// DefaultBaseURL is the public pet store.
const DefaultBaseURL = "https://petstore.swagger.io/v2"

// Config carries environment-driven settings for a suite run.
type Config struct {
	BaseURL            string
	RequestTimeout     time.Duration
	FixturesDir        string
	BatchFixture       string
	Filters            petsapp.RegexFilters
	ReportsPostgresDSN string
	LogLevel           string
	Environment        string
	OTLPEndpoint       string
	NoColor            bool
}

// LoadConfig reads an optional .env file, then environment variables, and
// applies defaults. Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	cfg := Config{
		BaseURL:            envDefault("PETSTORE_BASE_URL", DefaultBaseURL),
		RequestTimeout:     petstore.DefaultTimeout,
		FixturesDir:        strings.TrimSpace(os.Getenv("PETSTORE_FIXTURES_DIR")),
		BatchFixture:       strings.TrimSpace(os.Getenv("PETSTORE_BATCH_FIXTURE")),
		ReportsPostgresDSN: strings.TrimSpace(os.Getenv("REPORTS_POSTGRES_DSN")),
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		Environment:        envDefault("ENVIRONMENT", "local"),
		OTLPEndpoint:       strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		NoColor:            isTruthy(os.Getenv("NO_COLOR")),
	}
	if raw := strings.TrimSpace(os.Getenv("PETSTORE_REQUEST_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("PETSTORE_REQUEST_TIMEOUT must be a positive duration such as 5s")
		}
		cfg.RequestTimeout = timeout
	}
	for _, pattern := range splitList(os.Getenv("PETSTORE_RUN")) {
		if err := cfg.Filters.MustMatch.Set(pattern); err != nil {
			return Config{}, fmt.Errorf("PETSTORE_RUN: %w", err)
		}
	}
	for _, pattern := range splitList(os.Getenv("PETSTORE_SKIP")) {
		if err := cfg.Filters.MustNotMatch.Set(pattern); err != nil {
			return Config{}, fmt.Errorf("PETSTORE_SKIP: %w", err)
		}
	}
	return cfg, nil
}

// Validate checks settings that flags may have overridden after LoadConfig.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// Fixtures returns the fixture directory, or nil for the embedded defaults.
func (c Config) Fixtures() fs.FS {
	if c.FixturesDir == "" {
		return nil
	}
	return os.DirFS(c.FixturesDir)
}

// PetsConfig loads the lifecycle literals and points the batch case at its
// table. A batch fixture that is absolute or leaves the fixture directory is
// read from the operating system instead of the fixture set.
func (c Config) PetsConfig() (petsapp.Config, error) {
	cfg, err := petsapp.LoadConfig(c.Fixtures(), c.BatchFixture)
	if err != nil {
		return petsapp.Config{}, err
	}
	if fsys, name, ok := c.externalBatchFixture(); ok {
		cfg.Fixtures, cfg.BatchFixture = fsys, name
	}
	return cfg, nil
}

func (c Config) externalBatchFixture() (fs.FS, string, bool) {
	name := c.BatchFixture
	if name == "" || fs.ValidPath(filepath.ToSlash(name)) {
		return nil, "", false
	}
	if !filepath.IsAbs(name) && c.FixturesDir != "" {
		name = filepath.Join(c.FixturesDir, name)
	}
	name = filepath.Clean(name)
	return os.DirFS(filepath.Dir(name)), filepath.Base(name), true
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		// .env is optional; CI sets variables directly
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

// splitList splits a comma separated variable, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
