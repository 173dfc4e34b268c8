// Package mappers converts between wire payloads and task entities. All
// instants cross the wire as epoch seconds.
package mappers

import (
	"time"

	dto "task-service.com/task-service/internal/data_models"
	model "task-service.com/task-service/internal/models"
)

func ToTask(req dto.TaskRequest) *model.Task {
	task := &model.Task{
		Description:  req.Description,
		EstimateDate: EpochToTime(req.EstimateDate),
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssignToUserID != nil {
		task.AssignToUserID = *req.AssignToUserID
	}
	if req.UserName != nil {
		task.UserName = *req.UserName
	}

	return task
}

func ToTasks(reqs []dto.TaskRequest) []*model.Task {
	tasks := make([]*model.Task, 0, len(reqs))
	for _, req := range reqs {
		tasks = append(tasks, ToTask(req))
	}
	return tasks
}

func ToPatch(req dto.TaskRequest) *model.TaskPatch {
	return &model.TaskPatch{
		Name:           req.Name,
		Status:         req.Status,
		Priority:       req.Priority,
		Description:    req.Description,
		EstimateDate:   EpochToTime(req.EstimateDate),
		AssignToUserID: req.AssignToUserID,
		UserName:       req.UserName,
	}
}

func FromTask(task *model.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             task.ID,
		Name:           task.Name,
		Status:         task.Status,
		Priority:       task.Priority,
		Description:    task.Description,
		EstimateDate:   TimeToEpoch(task.EstimateDate),
		AssignToUserID: task.AssignToUserID,
		UserName:       task.UserName,
		CreatedAt:      task.CreatedAt.Unix(),
		UpdatedAt:      task.UpdatedAt.Unix(),
	}
}

func FromTasks(tasks []model.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromTask(&tasks[i]))
	}
	return out
}

func FromTaskPointers(tasks []*model.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, FromTask(task))
	}
	return out
}

func EpochToTime(seconds *int64) *time.Time {
	if seconds == nil {
		return nil
	}
	t := time.Unix(*seconds, 0).UTC()
	return &t
}

func TimeToEpoch(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	s := t.Unix()
	return &s
}
