package database

import (
	"fmt"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/gorm"
)

// DefaultDepartments danh sách phòng ban mặc định
func DefaultDepartments() []model.Department {
	names := []string{
		"Kinh doanh", "Kế toán", "Nhân sự", "CSKH", "Media",
		"Thủ kho", "Mật cách", "Tele sale", "Vận hành", "Nhập liệu",
	}
	now := time.Now()
	departments := make([]model.Department, 0, len(names))
	for i, name := range names {
		departments = append(departments, model.Department{
			ID:        fmt.Sprintf("%d", i+1),
			Name:      name,
			CreatedAt: now,
			CreatedBy: "0",
		})
	}
	return departments
}

// DefaultAdmin tài khoản quản trị mặc định
func DefaultAdmin() model.User {
	createdAt, _ := time.Parse(time.RFC3339, "2024-01-01T08:00:00Z")
	return model.User{
		ID:          "1",
		Name:        "Hệ thống",
		Username:    "admin",
		Email:       "admin@system.com",
		Role:        model.RoleSuperAdmin,
		IsOnline:    model.OnlineYes,
		PhoneNumber: "0901234567",
		Gender:      "Nam",
		Password:    "admin",
		CreatedAt:   createdAt,
		CreatedBy:   "0",
	}
}

// Seed nạp dữ liệu khởi tạo khi kho còn trống
// Tương ứng hành vi "không có khóa thì dùng dữ liệu mặc định" của bản cũ.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		admin := DefaultAdmin()
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	var deptCount int64
	if err := db.Model(&model.Department{}).Count(&deptCount).Error; err != nil {
		return fmt.Errorf("failed to count departments: %w", err)
	}
	if deptCount == 0 {
		departments := DefaultDepartments()
		if err := db.Create(&departments).Error; err != nil {
			return fmt.Errorf("failed to seed departments: %w", err)
		}
	}

	return nil
}
