package storage

import (
	"fmt"
	"time"

	"feasibility/models"
	"feasibility/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitGormDB opens the GORM connection used for evaluation history and
// migrates the history table.
func InitGormDB(cfg utils.Config) (*gorm.DB, error) {
	dsn := cfg.DSN() + " TimeZone=UTC"

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := gormDB.AutoMigrate(&models.EvaluationRecordGorm{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history table: %w", err)
	}
	return gormDB, nil
}
