package model

import (
	"errors"
	"time"
)

// Trạng thái online của người dùng
const (
	OnlineYes = 1
	OnlineNo  = 2
)

// User hồ sơ nhân sự
// Mật khẩu lưu dạng plaintext theo thiết kế sản phẩm hiện tại
// (đã được ghi nhận là lỗ hổng, giữ nguyên để tương thích đồng bộ).
type User struct {
	ID           string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Username     string     `gorm:"type:varchar(128);not null;index" json:"username"`
	Email        string     `gorm:"type:varchar(255)" json:"email"`
	Role         Role       `gorm:"type:varchar(32);not null;index" json:"role"`
	DepartmentID string     `gorm:"type:varchar(64);index" json:"departmentId"`
	IsOnline     int        `gorm:"type:int" json:"isOnline"` // 1: Online, 2: Offline
	PhoneNumber  string     `gorm:"type:varchar(32)" json:"phoneNumber"`
	Password     string     `gorm:"type:varchar(255)" json:"password"`
	Gender       string     `gorm:"type:varchar(16)" json:"gender"` // Nam | Nữ | Khác
	ImageAvatar  string     `gorm:"type:text" json:"image_avatar"`
	CreatedAt    time.Time  `gorm:"not null;index" json:"createdAt"`
	CreatedBy    string     `gorm:"type:varchar(64)" json:"createdBy,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy    string     `gorm:"type:varchar(64)" json:"updatedBy,omitempty"`
	DeletedAt    *time.Time `gorm:"index" json:"deletedAt,omitempty"`
	DeletedBy    string     `gorm:"type:varchar(64)" json:"deletedBy,omitempty"`
}

// TableName chỉ định tên bảng
func (User) TableName() string {
	return "users"
}

// Validate kiểm tra hồ sơ nhân sự
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("user ID is required")
	}
	if u.Name == "" {
		return errors.New("user name is required")
	}
	if u.Username == "" {
		return errors.New("username is required")
	}
	if !u.Role.Valid() {
		return errors.New("user role is invalid")
	}
	return nil
}

// IsDeleted người dùng đã bị xóa mềm
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
