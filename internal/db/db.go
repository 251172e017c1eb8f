package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/config"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/logs"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logs.Log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logs.Log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Account{},
		&models.User{},
		&models.Customer{},
		&models.Helper{},
		&models.Appointment{},
		&models.Invoice{},
		&models.AuditLog{},
	); err != nil {
		logs.Log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE accounts
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
