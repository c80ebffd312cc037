package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestIntoContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	ctx := IntoContext(context.Background(), l)
	FromContext(ctx).Info("open_order_success", "order_id", "o-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "open_order_success", line["msg"])
	assert.Equal(t, "o-1", line["order_id"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestFailure_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")

	Failure(l, "close_order_error", 404, errors.New("order not found"))
	var warn map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &warn))
	assert.Equal(t, "WARN", warn["level"])
	assert.Equal(t, "order not found", warn["reason"])

	buf.Reset()
	Failure(l, "close_order_error", 500, errors.New("db down"))
	var fail map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fail))
	assert.Equal(t, "ERROR", fail["level"])
}
