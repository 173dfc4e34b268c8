package repository

import (
	"context"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/metrics"
	model "task-service.com/task-service/internal/models"
)

const DefaultBatchSize = 50

const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

// TaskRepository is the only path to the tasks table. Every statement runs
// through the database handle's tenant plugin, so callers only need to bind
// the tenant to ctx.
type TaskRepository struct {
	db        *gorm.DB
	batchSize int
	metrics   *metrics.Repository
	tracer    trace.Tracer
}

func NewTaskRepository(db *gorm.DB, batchSize int, m *metrics.Repository) *TaskRepository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &TaskRepository{
		db:        db,
		batchSize: batchSize,
		metrics:   m,
		tracer:    otel.Tracer("task-service.com/task-service/internal/repositories"),
	}
}

func (r *TaskRepository) BatchSize() int {
	return r.batchSize
}

// Transaction runs fn against a repository bound to a single transaction.
// Any error returned by fn rolls back every statement fn issued.
func (r *TaskRepository) Transaction(ctx context.Context, fn func(repo *TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.withDB(tx))
	})
}

func (r *TaskRepository) withDB(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db:        db,
		batchSize: r.batchSize,
		metrics:   r.metrics,
		tracer:    r.tracer,
	}
}

func (r *TaskRepository) Count(ctx context.Context) (count int64, err error) {
	ctx, span := r.tracer.Start(ctx, "TaskRepository.Count")
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error
	return count, err
}

func (r *TaskRepository) FindWithPagination(ctx context.Context, page, pageSize int) (tasks []model.Task, err error) {
	if page < 0 || pageSize <= 0 {
		return nil, apperrors.ErrInvalidArgument.Because("page must not be negative and pageSize must be positive")
	}

	ctx, span := r.tracer.Start(ctx, "TaskRepository.FindWithPagination", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer func() { endSpan(span, err) }()

	// an offset past math.MaxInt is past every row
	if page > math.MaxInt/pageSize {
		return []model.Task{}, nil
	}

	err = r.db.WithContext(ctx).
		Order("id asc").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []int64) (tasks []model.Task, err error) {
	if len(ids) == 0 {
		return []model.Task{}, nil
	}

	ctx, span := r.tracer.Start(ctx, "TaskRepository.FindByIDs", trace.WithAttributes(
		attribute.Int("ids", len(ids)),
	))
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) DeleteByIDs(ctx context.Context, ids []int64) (deleted int64, err error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, span := r.tracer.Start(ctx, "TaskRepository.DeleteByIDs", trace.WithAttributes(
		attribute.Int("ids", len(ids)),
	))
	defer func() { endSpan(span, err) }()

	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Task{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}

	r.metrics.Affected(opDelete, res.RowsAffected)
	return res.RowsAffected, nil
}

// InsertInBatch persists tasks in chunks of the configured batch size. The
// store assigns ids and the tenant plugin stamps the bound tenant, both
// visible on the returned tasks. A failing chunk rolls back every chunk
// before it.
func (r *TaskRepository) InsertInBatch(ctx context.Context, tasks []*model.Task) (_ []*model.Task, err error) {
	if len(tasks) == 0 {
		return tasks, nil
	}

	ctx, span := r.tracer.Start(ctx, "TaskRepository.InsertInBatch", trace.WithAttributes(
		attribute.Int("rows", len(tasks)),
		attribute.Int("batch_size", r.batchSize),
	))
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uow := newUnitOfWork(tx, r.batchSize, r.metrics)
		for _, task := range tasks {
			if err := uow.persist(task); err != nil {
				return err
			}
		}
		return uow.flush()
	})
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateInBatch overwrites the columns set in patch on every task in ids.
// The SET clause is computed once and the same statement is applied to each
// chunk of ids. It returns the number of rows updated across all chunks.
func (r *TaskRepository) UpdateInBatch(ctx context.Context, ids []int64, patch *model.TaskPatch) (updated int64, err error) {
	if patch == nil {
		return 0, apperrors.ErrInvalidArgument.Because("update template must not be nil")
	}
	set := patch.Assignments()
	if len(set) == 0 {
		return 0, apperrors.ErrInvalidArgument.Because("update template carries no fields")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, span := r.tracer.Start(ctx, "TaskRepository.UpdateInBatch", trace.WithAttributes(
		attribute.Int("ids", len(ids)),
		attribute.Int("batch_size", r.batchSize),
		attribute.Int("columns", len(set)),
	))
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmt := tx.Model(&model.Task{}).Session(&gorm.Session{})

		for start := 0; start < len(ids); start += r.batchSize {
			end := min(start+r.batchSize, len(ids))

			res := stmt.Where("id IN ?", ids[start:end]).Updates(set)
			if res.Error != nil {
				return translateError(res.Error)
			}

			updated += res.RowsAffected
			r.metrics.Flushed(opUpdate, end-start)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.metrics.Affected(opUpdate, updated)
	return updated, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
