package multislogger

import (
	"bytes"
	"context"
	"testing"

	"log/slog"

	"github.com/kolide/kit/ulid"
	"github.com/stretchr/testify/require"
)

func TestMultiSlogger(t *testing.T) {
	t.Parallel()

	var primaryBuf, secondaryBuf bytes.Buffer

	clearBufsFn := func() {
		primaryBuf.Reset()
		secondaryBuf.Reset()
	}

	multislogger := New()
	multislogger.Logger.DebugContext(context.TODO(), "dont panic")

	multislogger = New(slog.NewJSONHandler(&primaryBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	secondaryLogLevel := new(slog.LevelVar)
	secondaryLogLevel.Set(slog.LevelInfo)
	multislogger.AddHandler(slog.NewJSONHandler(&secondaryBuf, &slog.HandlerOptions{Level: secondaryLogLevel}))

	multislogger.Logger.DebugContext(context.TODO(), "debug_msg")

	require.Contains(t, primaryBuf.String(), "debug_msg", "should be in primary log since it's debug level")
	require.Empty(t, secondaryBuf.String(), "should not be in secondary log since it's debug level")
	clearBufsFn()

	multislogger.Logger.InfoContext(context.TODO(), "info_msg")

	require.Contains(t, primaryBuf.String(), "info_msg")
	require.Contains(t, secondaryBuf.String(), "info_msg", "should be in secondary log since it's info level")
	clearBufsFn()

	// ensure that search_id gets added as an attribute when present in context
	searchId := ulid.New()
	ctx := context.WithValue(context.Background(), SearchIdKey, searchId)
	multislogger.Logger.Log(ctx, slog.LevelInfo, "info_with_interesting_ctx_value")

	require.Contains(t, primaryBuf.String(), searchId, "search id from context should be logged as an attribute")
}

func TestNewNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	require.NotPanics(t, func() {
		logger.InfoContext(context.TODO(), "goes nowhere")
	})
}
