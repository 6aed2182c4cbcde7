package database

import (
	"time"

	"worldtax/internal/logger"
	"worldtax/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log.GetGormWriter(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Warnw("failed to auto-migrate models", "error", err)
	}

	return db, nil
}

// Migrate creates or updates the reference data and audit tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.JurisdictionRecord{},
		&model.TradeAgreementRecord{},
		&model.AuditLog{},
	)
}
