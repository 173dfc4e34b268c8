package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "task-service.com/task-service/internal/errors"
)

// translateError surfaces store constraint failures as ErrConstraintViolation
// and passes everything else through.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isConstraintError(err) {
		return apperrors.ErrConstraintViolation.Wrap(err)
	}
	return err
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
