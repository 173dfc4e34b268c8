package services

import (
	"context"

	"go.uber.org/zap"

	"task-service.com/task-service/internal/auth"
	dto "task-service.com/task-service/internal/data_models"
	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/mappers"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/tenant"
)

// TaskService validates call arguments and runs each call in one
// transaction. Field-level validation of payloads happens at the HTTP
// boundary.
type TaskService struct {
	repo   *repository.TaskRepository
	logger *zap.Logger
}

func NewTaskService(repo *repository.TaskRepository, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TaskService) PageEntities(ctx context.Context, page, pageSize int) (*dto.Page[dto.TaskResponse], error) {
	if page < 0 || pageSize <= 0 {
		return nil, apperrors.ErrInvalidArgument.Because("page and pageSize must be positive values")
	}

	var result *dto.Page[dto.TaskResponse]
	err := s.repo.Transaction(ctx, func(repo *repository.TaskRepository) error {
		tasks, err := repo.FindWithPagination(ctx, page, pageSize)
		if err != nil {
			return err
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}

		result = dto.NewPage(mappers.FromTasks(tasks), page, pageSize, total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *TaskService) FindEntities(ctx context.Context, ids []int64) ([]dto.TaskResponse, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []dto.TaskResponse{}, nil
	}

	tasks, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return mappers.FromTasks(tasks), nil
}

func (s *TaskService) CreateEntities(ctx context.Context, reqs []dto.TaskRequest) ([]dto.TaskResponse, error) {
	if len(reqs) == 0 {
		return []dto.TaskResponse{}, nil
	}

	tasks := mappers.ToTasks(reqs)
	err := s.repo.Transaction(ctx, func(repo *repository.TaskRepository) error {
		_, err := repo.InsertInBatch(ctx, tasks)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "Created multiple tasks in batch.", int64(len(tasks)))
	return mappers.FromTaskPointers(tasks), nil
}

func (s *TaskService) UpdateEntities(ctx context.Context, ids []int64, req *dto.TaskRequest) (*dto.OperationResult, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.ErrInvalidArgument.Because("task ids list cannot be null or empty")
	}
	if req == nil {
		return nil, apperrors.ErrInvalidArgument.Because("task object cannot be null")
	}

	patch := mappers.ToPatch(*req)
	if patch.IsEmpty() {
		return nil, apperrors.ErrInvalidArgument.Because("task object carries no fields to update")
	}

	var updated int64
	err := s.repo.Transaction(ctx, func(repo *repository.TaskRepository) error {
		var err error
		updated, err = repo.UpdateInBatch(ctx, ids, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "Updated multiple tasks in batch.", updated)
	return dto.NewOperationResult(updated, "tasks updated"), nil
}

func (s *TaskService) DeleteEntities(ctx context.Context, ids []int64) (*dto.OperationResult, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.ErrInvalidArgument.Because("task ids list cannot be null or empty")
	}

	var deleted int64
	err := s.repo.Transaction(ctx, func(repo *repository.TaskRepository) error {
		var err error
		deleted, err = repo.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "Delete multiple tasks in batch.", deleted)
	return dto.NewOperationResult(deleted, "tasks deleted"), nil
}

// Search is not implemented and always fails.
func (s *TaskService) Search(ctx context.Context, query string) ([]dto.TaskResponse, error) {
	return nil, apperrors.ErrUnsupported.Because("task search is not implemented")
}

func (s *TaskService) audit(ctx context.Context, operation string, affected int64) {
	fields := []zap.Field{
		zap.String("tenant_id", tenant.Resolve(ctx).String()),
		zap.Int64("affected", affected),
	}
	if p, ok := auth.PrincipalFrom(ctx); ok {
		fields = append(fields, zap.String("user", p.Subject))
	}

	s.logger.Info(operation, fields...)
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return ids
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
