package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/ratelimit"
)

func RateLimiter(limiter ratelimit.Limiter, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					zap.String("client", key),
					zap.Error(err),
				)
			}
			if !allowed {
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
