package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-service.com/task-service/internal/errors"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ErrorHandler renders application exceptions with their own status and
// hides everything else behind a 500.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		res := errorResponse{
			Status:  apperrors.StatusCode(err),
			Message: "internal server error",
		}

		var appErr *apperrors.Exception
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			res.Code = appErr.Code
			res.Message = appErr.Message
		case errors.As(err, &httpErr):
			res.Status = httpErr.Code
			res.Message = fmt.Sprint(httpErr.Message)
		}

		if res.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(res.Status)
		} else {
			err = c.JSON(res.Status, res)
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}
