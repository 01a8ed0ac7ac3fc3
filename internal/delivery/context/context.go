// Package context carries request-scoped values (request id, logger, caller)
// from the delivery layer into the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from and echoed back on every request.
const HeaderXRequestID = echo.HeaderXRequestID

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyCaller
)

// echoKeyRequestID is the echo.Context store key mirroring keyRequestID.
const echoKeyRequestID = "request_id"

// Caller is the subject of a validated access token.
type Caller struct {
	UserID    uint
	ProfileID uint
}

// GetRequestID returns the request id stored on c, or a fresh one when the
// request id middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

// SetRequestID stores the request id on c.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext returns "" when ctx carries no request id.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLogger returns nil when ctx carries no request-scoped logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(keyLogger).(*slog.Logger)

	return logger
}

func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// WithCaller records the authenticated caller on ctx.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, keyCaller, caller)
}

// GetCaller reports false for anonymous requests.
func GetCaller(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(keyCaller).(Caller)

	return caller, ok && caller.UserID != 0
}
