package dto

import (
	"github.com/google/uuid"

	"task-service.com/task-service/internal/constants"
)

// TaskRequest is both the create payload and the update template. Absent
// JSON fields stay nil, which on update means "leave the column alone".
type TaskRequest struct {
	Name           *string                 `json:"name"`
	Status         *constants.TaskStatus   `json:"status"`
	Priority       *constants.TaskPriority `json:"priority"`
	Description    *string                 `json:"description"`
	EstimateDate   *int64                  `json:"estimateDate"`
	AssignToUserID *uuid.UUID              `json:"assignToUserId"`
	UserName       *string                 `json:"userName"`
}

type TaskResponse struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Status         constants.TaskStatus   `json:"status"`
	Priority       constants.TaskPriority `json:"priority"`
	Description    *string                `json:"description"`
	EstimateDate   *int64                 `json:"estimateDate"`
	AssignToUserID uuid.UUID              `json:"assignToUserId"`
	UserName       string                 `json:"userName"`
	CreatedAt      int64                  `json:"createdAt"`
	UpdatedAt      int64                  `json:"updatedAt"`
}
