// Package multislogger fans a single slog.Logger out to any number of
// handlers, adding request-scoped context values as log attributes.
package multislogger

import (
	"context"
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

const (
	// SearchIdKey identifies one search invocation across its log lines.
	SearchIdKey contextKey = "search_id"
	// VolumeKey carries the volume path for index-admin operations.
	VolumeKey contextKey = "volume"
)

// ctxValueKeysToAdd is the list of context keys that will be added as log
// attributes when present.
var ctxValueKeysToAdd = []contextKey{
	SearchIdKey,
	VolumeKey,
}

type MultiSlogger struct {
	*slog.Logger
	handlers []slog.Handler
}

// New creates a new multislogger. With no handlers it discards all logs.
func New(h ...slog.Handler) *MultiSlogger {
	ms := new(MultiSlogger)

	if len(h) == 0 {
		// no handlers passed in, discard logs. The discard handler is
		// not recorded, so it falls away once a real one is added.
		ms.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return ms
	}

	ms.AddHandler(h...)
	return ms
}

// NewNopLogger returns a logger that discards everything, for tests and for
// callers that pass no logger.
func NewNopLogger() *slog.Logger {
	return New().Logger
}

// AddHandler adds a handler to the multislogger. This rebuilds the
// underlying slog.Logger, so attributes added with Logger.With are lost.
func (m *MultiSlogger) AddHandler(handler ...slog.Handler) {
	m.handlers = append(m.handlers, handler...)

	// the slogmulti Fanout handler cannot grow after construction, so
	// rebuild the pipeline every time
	m.Logger = slog.New(
		slogmulti.
			Pipe(slogmulti.NewHandleInlineMiddleware(utcTimeMiddleware)).
			Pipe(slogmulti.NewHandleInlineMiddleware(ctxValuesMiddleWare)).
			Handler(slogmulti.Fanout(m.handlers...)),
	)
}

func utcTimeMiddleware(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
	record.Time = record.Time.UTC()
	return next(ctx, record)
}

func ctxValuesMiddleWare(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
	for _, key := range ctxValueKeysToAdd {
		if v := ctx.Value(key); v != nil {
			record.AddAttrs(slog.Attr{
				Key:   key.String(),
				Value: slog.AnyValue(v),
			})
		}
	}

	return next(ctx, record)
}
