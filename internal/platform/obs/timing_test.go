package obs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-planner/backend/internal/platform/obs"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestTime_LogsFailureWithRequestID(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-42")

	err := errors.New("boom")
	obs.Time(ctx, "planner.create_trip")(&err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "planner.create_trip", rec["op"])
	assert.Equal(t, "req-42", rec["request_id"])
	assert.Equal(t, "boom", rec["error"])
}

func TestTime_LogsSuccessAtDebug(t *testing.T) {
	buf := captureLogs(t)

	var err error
	obs.Time(context.Background(), "planner.list_locations")(&err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.NotContains(t, rec, "request_id")
	assert.NotContains(t, rec, "error")
}
