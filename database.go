package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/scm-sandbox/scm-backend/models"
	"github.com/scm-sandbox/scm-backend/shared/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig holds GORM database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewDatabaseConfig creates the database configuration from the environment
func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:            utils.GetEnvOrDefault("SCM_DATABASE_HOSTNAME", "localhost"),
		Port:            utils.GetEnvOrDefault("SCM_DATABASE_PORT", "5432"),
		Username:        utils.GetEnvOrDefault("SCM_DATABASE_USERNAME", "postgres"),
		Password:        utils.GetEnvOrDefault("SCM_DATABASE_PASSWORD", "password"),
		Database:        utils.GetEnvOrDefault("SCM_DATABASE_NAME", "scm"),
		SSLMode:         utils.GetEnvOrDefault("DB_SSLMODE", "require"),
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// ConnectGormDB establishes a GORM connection to PostgreSQL
func ConnectGormDB(config *DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.Username, config.Password, config.Database, config.SSLMode)

	gormLogger := logger.Default.LogMode(logger.Warn)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL database",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database)

	// The SCM schema is owned by the database; migration only runs when asked
	if os.Getenv("RUN_MIGRATION") == "true" {
		slog.Info("Running GORM auto-migration for SCM models")
		err = db.AutoMigrate(
			&models.Location{},
			&models.Company{},
			&models.Product{},
			&models.SuppliesProduct{},
			&models.DependsOn{},
			&models.Shipping{},
			&models.Receiving{},
			&models.InventoryTransaction{},
			&models.FinancialReport{},
			&models.DisruptionEvent{},
			&models.ImpactsCompany{},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		slog.Info("GORM auto-migration completed")
	}

	return db, nil
}
