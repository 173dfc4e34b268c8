package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/tenant"
)

// NewDatabaseClient opens the store with tenant scoping installed. Every
// handle returned here filters tenant-owned tables by the tenant bound to the
// statement context.
func NewDatabaseClient(dsn, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := db.Use(tenant.NewPlugin()); err != nil {
		return nil, fmt.Errorf("register tenant plugin: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Task{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
