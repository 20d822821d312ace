package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.Error(t, err)
}

func TestConnectOrFallback_EmptyDSN(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, cleanup := ConnectOrFallback(context.Background(), "", logger)
	assert.Nil(t, db)
	cleanup()
	assert.Contains(t, logs.String(), "keeping run reports in memory")
}
