// Package middleware provides Fiber middleware and shared logging/metrics plumbing.
package middleware

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	LoginIDKey   contextKey = "login_id"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if lid, ok := ctx.Value(LoginIDKey).(string); ok {
		r.AddAttrs(slog.String("login_id", lid))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	// Initialize a structured logger based on environment
	var handler slog.Handler
	level := slog.LevelInfo

	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Pretty text output for local development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	// Wrap with our context-aware handler
	Logger = slog.New(&ctxHandler{handler})
}

// ContextMiddleware injects the request ID into the request context so the
// context-aware logger picks it up in deep service layers. Route parameters
// are not visible from Use-mounted handlers; the login id is added per route
// via WithLoginID.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if rid := c.Locals("requestid"); rid != nil {
			if ridStr, ok := rid.(string); ok {
				ctx = context.WithValue(ctx, RequestIDKey, ridStr)
			}
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// WithLoginID returns ctx enriched with the login id for log attribution.
// An empty login id leaves ctx unchanged.
func WithLoginID(ctx context.Context, loginID string) context.Context {
	if loginID == "" {
		return ctx
	}
	return context.WithValue(ctx, LoginIDKey, loginID)
}
