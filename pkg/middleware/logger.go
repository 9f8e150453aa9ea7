// pkg/middleware/logger.go

package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	LoggerKey    = "logger"
	RequestIDKey = "request_id"
)

// InjectLogger - мидлвэр для добавления логгера в контекст запроса.
// Логгер получает request_id, который также уходит клиенту в X-Request-ID.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLogger := logger.With(zap.String("request_id", requestID))
			c.Set(RequestIDKey, requestID)
			c.Set(LoggerKey, reqLogger)
			return next(c)
		}
	}
}

// AccessLog пишет по строке на запрос после его обработки.
func AccessLog(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			Logger(c, logger).Info("HTTP запрос",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Int64("bytes", c.Response().Size),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// Logger достаёт логгер запроса, если его положил InjectLogger.
func Logger(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}

func RequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
