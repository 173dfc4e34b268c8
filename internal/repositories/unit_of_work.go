package repository

import (
	"gorm.io/gorm"

	"task-service.com/task-service/internal/metrics"
	model "task-service.com/task-service/internal/models"
)

// unitOfWork stages inserts and writes them to the store once size tasks are
// pending. Pending tasks are dropped after every flush, so at most size
// tasks are ever held.
type unitOfWork struct {
	tx      *gorm.DB
	size    int
	pending []*model.Task
	metrics *metrics.Repository
}

func newUnitOfWork(tx *gorm.DB, size int, m *metrics.Repository) *unitOfWork {
	return &unitOfWork{
		tx:      tx,
		size:    size,
		pending: make([]*model.Task, 0, size),
		metrics: m,
	}
}

func (u *unitOfWork) persist(task *model.Task) error {
	u.pending = append(u.pending, task)
	if len(u.pending) >= u.size {
		return u.flush()
	}
	return nil
}

func (u *unitOfWork) flush() error {
	if len(u.pending) == 0 {
		return nil
	}

	if err := u.tx.Create(&u.pending).Error; err != nil {
		return translateError(err)
	}

	u.metrics.Flushed(opInsert, len(u.pending))
	u.metrics.Affected(opInsert, int64(len(u.pending)))
	u.pending = make([]*model.Task, 0, u.size)
	return nil
}
