package model

import (
	"errors"
	"time"
)

// Tên các mục cấu hình lưu cục bộ (tương ứng các khóa localStorage cũ)
const (
	SettingReadURL          = "gs_read"
	SettingWriteURL         = "gs_write"
	SettingLastUserSync     = "last_user_sync"
	SettingRememberedLogins = "remembered_logins"
)

// Setting mục cấu hình key-value lưu trong kho cục bộ
type Setting struct {
	Name      string    `gorm:"primaryKey;type:varchar(64)" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName chỉ định tên bảng
func (Setting) TableName() string {
	return "settings"
}

// Validate kiểm tra mục cấu hình
func (s *Setting) Validate() error {
	if s.Name == "" {
		return errors.New("setting name is required")
	}
	return nil
}
