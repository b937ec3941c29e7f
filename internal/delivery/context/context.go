// Package context carries per-request values (request id, scoped logger and
// the authenticated caller) between middleware, handlers and usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header a request id is read from and echoed in.
const HeaderXRequestID = "X-Request-Id"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// echo.Context store keys.
const (
	echoRequestID = "request_id"
	echoUserID    = "user_id"
	echoUserRole  = "user_role"
)

// SetRequestID stores the request id on echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestID, requestID)
}

// GetRequestID returns the id stored by SetRequestID, then the one on the
// request context, and mints a new one when neither is present.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestID).(string); ok && id != "" {
		return id
	}
	if id := GetRequestIDFromContext(c.Request().Context()); id != "" {
		return id
	}

	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext returns the request id on ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithLogger returns a copy of ctx carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerOrDefault returns the logger stored by WithLogger, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// SetUser records the authenticated caller on echo.Context.
func SetUser(c echo.Context, userID uuid.UUID, role string) {
	c.Set(echoUserID, userID)
	c.Set(echoUserRole, role)
}

// GetUserID returns the authenticated user's id, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(echoUserID).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// GetUserRole returns the authenticated user's role, or "" for anonymous requests.
func GetUserRole(c echo.Context) string {
	role, _ := c.Get(echoUserRole).(string)

	return role
}
