package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	sessionIDKey ctxKey = ContextKeySessionID
	requestIDKey ctxKey = ContextKeyRequestID
)

// InitLogger builds a logger writing to w and installs it as the slog default
func InitLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(cfg.BaseAttributes())

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// GenerateSessionID creates a new id for a capture session
func GenerateSessionID() string {
	return uuid.NewString()
}

// WithSessionID returns a new context carrying the capture session id
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext extracts the session id from the context, if present
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// GenerateRequestID creates a new id for a status server request
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context carrying the request id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// FromContext returns the default logger with the session_id and request_id
// attributes when present
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id, ok := SessionIDFromContext(ctx); ok {
		l = l.With(AttrKeySessionID, id)
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		l = l.With(AttrKeyRequestID, id)
	}
	return l
}
