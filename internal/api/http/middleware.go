package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/observability"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

const (
	headerRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RegisterMiddlewares attaches request ids, the request deadline, access
// logging and error rendering, in that order. The access logger wraps the
// renderer so it sees the final status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(requestIDMiddleware())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorRenderingMiddleware(logger, metrics))
}

// requestIDMiddleware keeps a well-formed incoming id and mints one otherwise.
func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(headerRequestID, id)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorRenderingMiddleware turns returned errors and panics into the JSON
// error body. Form routes never get here for domain failures; they redirect
// with a flash instead.
func errorRenderingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", requestID(c)),
					zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			de := apperrors.ToDomainError(err)
			metrics.RecordError(observability.RoutePattern(c), c.Method(), de.Code)

			body := fiber.Map{
				"code":    de.Code,
				"message": de.Message,
			}
			if len(de.Details) > 0 {
				body["details"] = de.Details
			}
			if de.HTTPStatus >= 500 {
				logger.Error("request failed", zap.String("request_id", requestID(c)), zap.Error(de))
			} else {
				logger.Debug("request rejected", zap.String("request_id", requestID(c)), zap.String("code", de.Code))
			}
			c.Status(de.HTTPStatus)
			_ = c.JSON(fiber.Map{"error": body})
			err = nil
		}()
		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
