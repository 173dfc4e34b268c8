package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-service.com/task-service/internal/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody errorResponse
	}{
		{
			name:     "wrapped exception",
			err:      fmt.Errorf("create tasks: %w", apperrors.ErrConstraintViolation.Because("duplicate name")),
			wantCode: http.StatusConflict,
			wantBody: errorResponse{Status: http.StatusConflict, Code: "CONSTRAINT_VIOLATION", Message: "duplicate name"},
		},
		{
			name:     "unsupported",
			err:      apperrors.ErrUnsupported,
			wantCode: http.StatusNotImplemented,
			wantBody: errorResponse{Status: http.StatusNotImplemented, Code: "UNSUPPORTED", Message: apperrors.ErrUnsupported.Message},
		},
		{
			name:     "echo error",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: errorResponse{Status: http.StatusNotFound, Message: "Not Found"},
		},
		{
			name:     "unknown error",
			err:      errors.New("disk on fire"),
			wantCode: http.StatusInternalServerError,
			wantBody: errorResponse{Status: http.StatusInternalServerError, Message: "internal server error"},
		},
	}

	handler := ErrorHandler(zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/tasks", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var got errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode body err=%v", err)
			}
			if got != tt.wantBody {
				t.Errorf("expected body %+v, got %+v", tt.wantBody, got)
			}
		})
	}
}
