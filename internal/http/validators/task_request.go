package validators

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	dto "task-service.com/task-service/internal/data_models"
	apperrors "task-service.com/task-service/internal/errors"
)

func ValidateCreateTaskRequests(reqs []dto.TaskRequest) error {
	for i := range reqs {
		if err := ValidateCreateTaskRequest(&reqs[i]); err != nil {
			return apperrors.ErrInvalidArgument.Because(fmt.Sprintf("task %d: %s", i, err.Error()))
		}
	}
	return nil
}

func ValidateCreateTaskRequest(r *dto.TaskRequest) error {
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return invalid("name is required")
	}
	if r.Status == nil {
		return invalid("status is required")
	}
	if r.Priority == nil {
		return invalid("priority is required")
	}
	if r.AssignToUserID == nil || *r.AssignToUserID == uuid.Nil {
		return invalid("assignToUserId is required")
	}
	if r.UserName == nil || strings.TrimSpace(*r.UserName) == "" {
		return invalid("userName is required")
	}

	return validatePresent(r)
}

// ValidateUpdateTaskRequest only checks the fields present in the template.
func ValidateUpdateTaskRequest(r *dto.TaskRequest) error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return invalid("name must not be blank")
	}
	if r.UserName != nil && strings.TrimSpace(*r.UserName) == "" {
		return invalid("userName must not be blank")
	}
	if r.AssignToUserID != nil && *r.AssignToUserID == uuid.Nil {
		return invalid("assignToUserId must not be the nil UUID")
	}

	return validatePresent(r)
}

func validatePresent(r *dto.TaskRequest) error {
	if r.Status != nil && !r.Status.Valid() {
		return invalid(fmt.Sprintf("unknown status %q", *r.Status))
	}
	if r.Priority != nil && !r.Priority.Valid() {
		return invalid(fmt.Sprintf("unknown priority %q", *r.Priority))
	}
	if r.EstimateDate != nil && *r.EstimateDate < 0 {
		return invalid("estimateDate must be epoch seconds")
	}
	return nil
}

func invalid(message string) error {
	return apperrors.ErrInvalidArgument.Because(message)
}
