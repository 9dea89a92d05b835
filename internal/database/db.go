package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hirenest/jobboard-api/internal/models"
)

// Connect opens the Postgres connection and runs migrations. The composite
// unique index on applications(user_id, post_id) comes from the model tags;
// it is the storage-level guard the apply path relies on.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Info("database connection established")

	log.Info("running migrations")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Application{},
		&models.Job{},
		&models.FreeJob{},
		&models.Interview{},
		&models.NotificationLog{},
		&models.NotificationEmailStatus{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}
