package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-service.com/task-service/internal/auth"
	middleware "task-service.com/task-service/internal/http/middlewares"
	"task-service.com/task-service/internal/metrics"
	"task-service.com/task-service/internal/ratelimit"
)

type RouteConfig struct {
	Verifier  *auth.Verifier
	AdminRole string
	Limiter   ratelimit.Limiter
	Logger    *zap.Logger
	Metrics   *metrics.HTTP
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

func Register(e *echo.Echo, h *Handler, cfg RouteConfig) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)
	e.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		e.Use(middleware.Metrics(cfg.Metrics))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "time": time.Now().UTC().Unix()})
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	guards := []echo.MiddlewareFunc{}
	if cfg.Limiter != nil {
		guards = append(guards, middleware.RateLimiter(cfg.Limiter, cfg.Logger))
	}
	guards = append(guards,
		middleware.Authenticate(cfg.Verifier),
		middleware.RequireRole(cfg.AdminRole),
	)

	tasks := e.Group("/tasks", guards...)
	tasks.POST("", h.CreateTasks)
	tasks.GET("", h.ListTasks)
	tasks.GET("/search", h.SearchTasks)
	tasks.GET("/:ids", h.GetTasks)
	tasks.DELETE("/:ids", h.DeleteTasks)
	tasks.PUT("/:ids", h.UpdateTasks)
}
