package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-e2e/internal/app/e2e"
	"github.com/Apurer/petstore-e2e/internal/petstoretest"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"PETSTORE_BASE_URL", "PETSTORE_RUN", "PETSTORE_SKIP", "REPORTS_POSTGRES_DSN", "PETSTORE_FIXTURES_DIR", "PETSTORE_BATCH_FIXTURE", "PETSTORE_REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCmd_Passes(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	out, err := execute(t, "run", "--base-url", server.URL+petstoretest.BasePath, "--timeout", "2s", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS 8 passed, 0 failed, 0 skipped")
}

func TestRunCmd_FailsWhenAStepFails(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	out, err := execute(t, "run", "--base-url", server.URL+petstoretest.BasePath, "--skip", "^1-", "--no-color")
	require.ErrorIs(t, err, errSuiteFailed)
	assert.Contains(t, out, "SKIP 1-create")
	assert.Contains(t, out, "2-read")
}

func TestRunCmd_RunFilter(t *testing.T) {
	_, server := petstoretest.NewServer()
	defer server.Close()

	out, err := execute(t, "run", "--base-url", server.URL+petstoretest.BasePath, "--run", "batch", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS 4 passed, 0 failed, 4 skipped")
}

func TestRunCmd_InvalidRegex(t *testing.T) {
	_, err := execute(t, "run", "--run", "(")
	require.Error(t, err)
}

func TestHistoryCmd_RequiresDSN(t *testing.T) {
	_, err := execute(t, "history")
	require.ErrorIs(t, err, e2e.ErrNoReportStore)
}
