package database

import (
	"context"
	"fmt"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BuildDSN dựng DSN PostgreSQL
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect mở kho lưu trữ
// SQLite là chế độ mặc định (lưu trữ cục bộ trên thiết bị),
// PostgreSQL dành cho triển khai dạng máy chủ.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.Driver {
	case "", "sqlite", "sqlite3":
		path := cfg.Path
		if path == "" {
			path = "kimtamcat.db"
		}
		db, err := gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(BuildDSN(cfg)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
}

// ConnectWithRetry kết nối có thử lại, backoff lũy tiến
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate tạo hoặc cập nhật lược đồ
func Migrate(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	// SQLite tạo bảng thủ công, các driver khác dùng AutoMigrate
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.User{},
			&model.Department{},
			&model.Task{},
			&model.TaskLog{},
			&model.Setting{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables tạo bảng cho SQLite
func createSQLiteTables(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			username VARCHAR(128) NOT NULL,
			email VARCHAR(255),
			role VARCHAR(32) NOT NULL,
			department_id VARCHAR(64),
			is_online INTEGER,
			phone_number VARCHAR(32),
			password VARCHAR(255),
			gender VARCHAR(16),
			image_avatar TEXT,
			created_at DATETIME NOT NULL,
			created_by VARCHAR(64),
			updated_at DATETIME,
			updated_by VARCHAR(64),
			deleted_at DATETIME,
			deleted_by VARCHAR(64)
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS departments (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL,
			created_by VARCHAR(64),
			updated_at DATETIME,
			updated_by VARCHAR(64),
			deleted_at DATETIME,
			deleted_by VARCHAR(64)
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create departments table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id VARCHAR(64) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			quadrant VARCHAR(8) NOT NULL,
			status VARCHAR(32) NOT NULL,
			assignee_id VARCHAR(64) NOT NULL,
			creator_id VARCHAR(64) NOT NULL,
			follower_ids TEXT,
			department_id VARCHAR(64),
			created_at DATETIME NOT NULL,
			start_date DATETIME,
			end_date DATETIME,
			attachments TEXT,
			result_content TEXT,
			result_attachments TEXT,
			evaluation VARCHAR(32)
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS task_logs (
			id VARCHAR(64) PRIMARY KEY,
			task_id VARCHAR(64) NOT NULL,
			position INTEGER NOT NULL,
			content TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			user_id VARCHAR(64) NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create task_logs table: %w", err)
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			name VARCHAR(64) PRIMARY KEY,
			value TEXT,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}

	return nil
}

// CreateIndexes tạo chỉ mục
func CreateIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)").Error; err != nil {
		return fmt.Errorf("failed to create idx_users_username: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_department_id ON users(department_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_users_department_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_users_deleted_at: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tasks_status: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_assignee_id ON tasks(assignee_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tasks_assignee_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_creator_id ON tasks(creator_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tasks_creator_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_department_id ON tasks(department_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tasks_department_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_tasks_created_at: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_task_logs_task_id ON task_logs(task_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_task_logs_task_id: %w", err)
	}

	return nil
}

// CheckHealth kiểm tra kết nối kho lưu trữ
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
