package database

import (
	"testing"

	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "departments", "tasks", "task_logs", "settings"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	// Chạy lại không lỗi
	require.NoError(t, Migrate(db))
}

func TestSeedDefaults(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))

	var admin model.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, "1", admin.ID)
	assert.Equal(t, "Hệ thống", admin.Name)
	assert.Equal(t, model.RoleSuperAdmin, admin.Role)

	var deptCount int64
	require.NoError(t, db.Model(&model.Department{}).Count(&deptCount).Error)
	assert.Equal(t, int64(10), deptCount)

	var first model.Department
	require.NoError(t, db.Where("id = ?", "1").First(&first).Error)
	assert.Equal(t, "Kinh doanh", first.Name)
}

func TestSeedIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var userCount int64
	require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)
}

func TestCheckHealth(t *testing.T) {
	db := openMemoryDB(t)
	assert.True(t, CheckHealth(db))
	assert.False(t, CheckHealth(nil))
}

func TestBuildDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		DBName:  "kimtamcat",
		SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=kimtamcat sslmode=disable", BuildDSN(cfg))
}
