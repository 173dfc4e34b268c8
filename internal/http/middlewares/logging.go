package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-service.com/task-service/internal/tenant"
)

func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			if err := next(c); err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.String("request_id", requestID),
				zap.String("tenant_id", tenant.Resolve(c.Request().Context()).String()),
				zap.Duration("duration", time.Since(start)),
			}

			if c.Response().Status >= 500 {
				logger.Error("HTTP request failed", fields...)
			} else {
				logger.Info("HTTP request completed", fields...)
			}

			return nil
		}
	}
}
