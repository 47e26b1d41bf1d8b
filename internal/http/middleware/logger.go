package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorLocalKey holds an internal error a handler chose not to expose to the
// client. The request logger attaches it to the access log entry.
const ErrorLocalKey = "internal_error"

// Logger writes one structured entry per request with request_id, method,
// path, status and latency. The level follows the status class.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := statusOf(c, err)
		fields := []zap.Field{
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if p := PrincipalFrom(c); !p.IsAnonymous() {
			fields = append(fields, zap.String("user_id", p.UserID))
		}
		if internal, ok := c.Locals(ErrorLocalKey).(error); ok {
			fields = append(fields, zap.Error(internal))
		} else if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}

		return err
	}
}

// statusOf reports the status the client will see. Errors returned up the
// chain have not been rendered by the error handler yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
