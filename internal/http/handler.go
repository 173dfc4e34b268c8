package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-service.com/task-service/internal/data_models"
	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/http/validators"
	"task-service.com/task-service/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTasks(c echo.Context) error {
	var reqs []dto.TaskRequest
	if err := new(echo.DefaultBinder).BindBody(c, &reqs); err != nil {
		return apperrors.ErrInvalidArgument.Because("invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequests(reqs); err != nil {
		return err
	}

	tasks, err := h.taskService.CreateEntities(c.Request().Context(), reqs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) ListTasks(c echo.Context) error {
	var page, pageSize int
	err := echo.QueryParamsBinder(c).
		MustInt("page", &page).
		MustInt("pageSize", &pageSize).
		BindError()
	if err != nil {
		return apperrors.ErrInvalidArgument.Because("page and pageSize query parameters are required integers")
	}

	result, err := h.taskService.PageEntities(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetTasks(c echo.Context) error {
	ids, err := parseIDs(c.Param("ids"))
	if err != nil {
		return err
	}

	tasks, err := h.taskService.FindEntities(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) DeleteTasks(c echo.Context) error {
	ids, err := parseIDs(c.Param("ids"))
	if err != nil {
		return err
	}

	result, err := h.taskService.DeleteEntities(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateTasks(c echo.Context) error {
	ids, err := parseIDs(c.Param("ids"))
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := new(echo.DefaultBinder).BindBody(c, &req); err != nil {
		return apperrors.ErrInvalidArgument.Because("invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	result, err := h.taskService.UpdateEntities(c.Request().Context(), ids, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) SearchTasks(c echo.Context) error {
	tasks, err := h.taskService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

// parseIDs reads a comma-separated id list such as "1,2,3".
func parseIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument.Because(fmt.Sprintf("invalid task id %q", part))
		}
		ids = append(ids, id)
	}

	return ids, nil
}
