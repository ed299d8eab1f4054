package model

import (
	"errors"
	"time"
)

// Department phòng ban
// Xóa phòng ban KHÔNG cascade: nhân sự giữ tham chiếu treo
// và được hiển thị là chưa phân bổ.
type Department struct {
	ID        string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt,omitempty"`
	CreatedBy string     `gorm:"type:varchar(64)" json:"createdBy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy string     `gorm:"type:varchar(64)" json:"updatedBy,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy string     `gorm:"type:varchar(64)" json:"deletedBy,omitempty"`
}

// TableName chỉ định tên bảng
func (Department) TableName() string {
	return "departments"
}

// Validate kiểm tra phòng ban
func (d *Department) Validate() error {
	if d.ID == "" {
		return errors.New("department ID is required")
	}
	if d.Name == "" {
		return errors.New("department name is required")
	}
	return nil
}
