package model

import (
	"time"

	"github.com/google/uuid"

	"task-service.com/task-service/internal/constants"
)

// TenantScoped carries the owning tenant of a row. It is stamped by the
// tenant plugin on insert and never taken from request payloads.
type TenantScoped struct {
	TenantID uuid.UUID `gorm:"column:tenant_id;type:varchar(36);not null;index:idx_tasks_tenant_id;uniqueIndex:idx_tasks_tenant_name,priority:1;index:idx_tasks_tenant_id_with_id,priority:1"`
}

type Task struct {
	TenantScoped

	ID             int64                  `gorm:"primaryKey;autoIncrement;index:idx_tasks_tenant_id_with_id,priority:2"`
	Name           string                 `gorm:"not null;uniqueIndex:idx_tasks_tenant_name,priority:2"`
	Status         constants.TaskStatus   `gorm:"type:varchar(20);not null"`
	Priority       constants.TaskPriority `gorm:"type:varchar(20);not null"`
	Description    *string
	EstimateDate   *time.Time
	AssignToUserID uuid.UUID `gorm:"column:assign_to_user_id;type:varchar(36);not null"`
	UserName       string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
