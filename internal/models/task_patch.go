package model

import (
	"time"

	"github.com/google/uuid"

	"task-service.com/task-service/internal/constants"
)

// TaskPatch is the template of a batch update. Every non-nil field overwrites
// the matching column on all targeted rows; nil fields are left untouched.
type TaskPatch struct {
	Name           *string
	Status         *constants.TaskStatus
	Priority       *constants.TaskPriority
	Description    *string
	EstimateDate   *time.Time
	AssignToUserID *uuid.UUID
	UserName       *string
}

func (p *TaskPatch) IsEmpty() bool {
	return len(p.Assignments()) == 0
}

// Assignments returns the SET clause of the update keyed by column name.
func (p *TaskPatch) Assignments() map[string]interface{} {
	set := make(map[string]interface{})
	if p == nil {
		return set
	}

	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.EstimateDate != nil {
		set["estimate_date"] = p.EstimateDate.UTC().Truncate(time.Second)
	}
	if p.AssignToUserID != nil {
		set["assign_to_user_id"] = *p.AssignToUserID
	}
	if p.UserName != nil {
		set["user_name"] = *p.UserName
	}

	return set
}
