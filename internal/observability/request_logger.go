package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and feeds the request counters.
// It must run outside the error renderer so the status is final.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		metrics.RecordRequest(RoutePattern(c), c.Method(), status, elapsed)
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
		)
		return err
	}
}

// RoutePattern reports the pattern of the last route the request reached,
// so ids in the URL do not fan out the counters. A prefix middleware route
// has the pattern "/", and requests that stop there fall back to the path.
func RoutePattern(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Path == "" {
		return c.Path()
	}
	if route.Path == "/" && c.Path() != "/" {
		return c.Path()
	}
	return route.Path
}
