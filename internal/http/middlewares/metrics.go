package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"task-service.com/task-service/internal/metrics"
)

func Metrics(m *metrics.HTTP) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			m.Active.Inc()
			defer m.Active.Dec()

			if err := next(c); err != nil {
				c.Error(err)
			}

			method := c.Request().Method
			route := c.Path()
			m.Duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			m.Requests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()

			return nil
		}
	}
}
