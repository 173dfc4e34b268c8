package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"task-service.com/task-service/internal/auth"
	config "task-service.com/task-service/internal/configs"
	dto "task-service.com/task-service/internal/data_models"
	httpapi "task-service.com/task-service/internal/http"
	"task-service.com/task-service/internal/metrics"
	"task-service.com/task-service/internal/ratelimit"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/services"
)

const secret = "test-secret"

type app struct {
	e        *echo.Echo
	verifier *auth.Verifier
}

func newApp(t *testing.T, rateLimit int) *app {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := config.NewDatabaseClient(dsn, "silent")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	reg := prometheus.NewRegistry()
	repo := repository.NewTaskRepository(db, 2, metrics.NewRepository(reg))
	handler := httpapi.NewHandler(services.NewTaskService(repo, nil))
	verifier := auth.NewVerifier(secret, "tenant_id")

	e := echo.New()
	httpapi.Register(e, handler, httpapi.RouteConfig{
		Verifier:       verifier,
		AdminRole:      "ADMIN",
		Limiter:        ratelimit.NewMemoryLimiter(rateLimit, time.Minute),
		Metrics:        metrics.NewHTTP(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	return &app{e: e, verifier: verifier}
}

func (a *app) token(t *testing.T, tenantID string, roles ...string) string {
	t.Helper()
	token, err := a.verifier.Issue("user-1", tenantID, roles, time.Hour)
	if err != nil {
		t.Fatalf("issue token err=%v", err)
	}
	return token
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body err=%v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	a.e.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response err=%v body=%s", err, rr.Body.String())
	}
	return v
}

func taskBody(name string) map[string]any {
	return map[string]any{
		"name":           name,
		"status":         "OPEN",
		"priority":       "HIGH",
		"description":    "from the API",
		"estimateDate":   1_800_000_000,
		"assignToUserId": uuid.NewString(),
		"userName":       "kim",
	}
}

func (a *app) create(t *testing.T, token string, names ...string) []dto.TaskResponse {
	t.Helper()
	body := make([]map[string]any, 0, len(names))
	for _, n := range names {
		body = append(body, taskBody(n))
	}

	rr := a.do(t, http.MethodPost, "/tasks", token, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	return decode[[]dto.TaskResponse](t, rr)
}

func TestTasks_RequiresAuthentication(t *testing.T) {
	a := newApp(t, 100)

	rr := a.do(t, http.MethodGet, "/tasks?page=0&pageSize=10", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}

	rr = a.do(t, http.MethodGet, "/tasks?page=0&pageSize=10", "not-a-jwt", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rr.Code)
	}
}

func TestTasks_RequiresAdminRole(t *testing.T) {
	a := newApp(t, 100)

	rr := a.do(t, http.MethodGet, "/tasks?page=0&pageSize=10", a.token(t, "acme", "USER"), nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestTasks_CreateAndPage(t *testing.T) {
	a := newApp(t, 100)
	token := a.token(t, "acme", "ROLE_ADMIN")

	created := a.create(t, token, "a", "b", "c")
	if len(created) != 3 || created[0].ID == 0 {
		t.Fatalf("unexpected create response %+v", created)
	}
	if created[0].EstimateDate == nil || *created[0].EstimateDate != 1_800_000_000 {
		t.Errorf("expected estimateDate in seconds, got %v", created[0].EstimateDate)
	}

	rr := a.do(t, http.MethodGet, "/tasks?page=0&pageSize=2", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("page status=%d body=%s", rr.Code, rr.Body.String())
	}

	page := decode[dto.Page[dto.TaskResponse]](t, rr)

	if len(page.Content) != 2 || page.PageSize != 2 || page.TotalElements != 3 || page.TotalPages != 2 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestTasks_TenantIsolation(t *testing.T) {
	a := newApp(t, 100)
	acme := a.token(t, "acme", "ADMIN")
	globex := a.token(t, uuid.NewString(), "ADMIN")

	created := a.create(t, acme, "secret-plan")
	path := fmt.Sprintf("/tasks/%d", created[0].ID)

	rr := a.do(t, http.MethodGet, path, globex, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := decode[[]dto.TaskResponse](t, rr); len(got) != 0 {
		t.Errorf("expected other tenant to see nothing, got %+v", got)
	}

	rr = a.do(t, http.MethodDelete, path, globex, nil)
	if res := decode[dto.OperationResult](t, rr); res.AffectedRecords != 0 {
		t.Errorf("expected other tenant to delete nothing, got %d", res.AffectedRecords)
	}

	rr = a.do(t, http.MethodGet, path, acme, nil)
	if got := decode[[]dto.TaskResponse](t, rr); len(got) != 1 {
		t.Errorf("expected owner to still see the task, got %d", len(got))
	}
}

func TestTasks_UpdateAndDelete(t *testing.T) {
	a := newApp(t, 100)
	token := a.token(t, "acme", "ADMIN")

	created := a.create(t, token, "x", "y", "z")
	ids := fmt.Sprintf("%d,%d,%d", created[0].ID, created[1].ID, created[2].ID)

	rr := a.do(t, http.MethodPut, "/tasks/"+ids, token, map[string]any{"status": "DONE"})
	if rr.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", rr.Code, rr.Body.String())
	}
	if res := decode[dto.OperationResult](t, rr); res.AffectedRecords != 3 {
		t.Errorf("expected 3 updated, got %d", res.AffectedRecords)
	}

	rr = a.do(t, http.MethodGet, "/tasks/"+ids, token, nil)
	for _, task := range decode[[]dto.TaskResponse](t, rr) {
		if task.Status != "DONE" || task.Priority != "HIGH" {
			t.Errorf("unexpected task after patch %+v", task)
		}
	}

	rr = a.do(t, http.MethodDelete, "/tasks/"+ids, token, nil)
	if res := decode[dto.OperationResult](t, rr); res.AffectedRecords != 3 {
		t.Errorf("expected 3 deleted, got %d", res.AffectedRecords)
	}
}

func TestTasks_ErrorMapping(t *testing.T) {
	a := newApp(t, 100)
	token := a.token(t, "acme", "ADMIN")
	a.create(t, token, "taken")

	missingName := taskBody("")
	delete(missingName, "name")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"bad id", http.MethodGet, "/tasks/1,abc", nil, http.StatusBadRequest},
		{"negative page", http.MethodGet, "/tasks?page=-1&pageSize=10", nil, http.StatusBadRequest},
		{"zero page size", http.MethodGet, "/tasks?page=0&pageSize=0", nil, http.StatusBadRequest},
		{"missing page params", http.MethodGet, "/tasks", nil, http.StatusBadRequest},
		{"missing name", http.MethodPost, "/tasks", []any{missingName}, http.StatusBadRequest},
		{"bad status", http.MethodPut, "/tasks/1", map[string]any{"status": "LATER"}, http.StatusBadRequest},
		{"empty template", http.MethodPut, "/tasks/1", map[string]any{}, http.StatusBadRequest},
		{"duplicate name", http.MethodPost, "/tasks", []any{taskBody("taken")}, http.StatusConflict},
		{"search", http.MethodGet, "/tasks/search?q=x", nil, http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := a.do(t, tt.method, tt.path, token, tt.body)
			if rr.Code != tt.want {
				t.Errorf("expected %d, got %d body=%s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestTasks_RateLimited(t *testing.T) {
	a := newApp(t, 1)
	token := a.token(t, "acme", "ADMIN")

	if rr := a.do(t, http.MethodGet, "/tasks?page=0&pageSize=1", token, nil); rr.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rr.Code)
	}
	if rr := a.do(t, http.MethodGet, "/tasks?page=0&pageSize=1", token, nil); rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := newApp(t, 100)
	token := a.token(t, "acme", "ADMIN")
	a.create(t, token, "m1", "m2", "m3")

	rr := a.do(t, http.MethodGet, "/metrics", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `task_service_repository_flushes_total{operation="insert"} 2`) {
		t.Errorf("expected 2 insert flushes in metrics output:\n%s", body)
	}
	if !strings.Contains(body, "task_service_http_requests_total") {
		t.Error("expected http request metrics")
	}
}
