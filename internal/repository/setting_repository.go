package repository

import (
	"errors"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/gorm"
)

// SettingRepository kho cấu hình key-value cục bộ
// Tương ứng các mục localStorage của bản chạy trình duyệt:
// khóa vắng mặt nghĩa là "dùng giá trị mặc định".
type SettingRepository interface {
	Get(name string) (string, error)
	GetOrDefault(name, fallback string) string
	Set(name, value string) error
	Delete(name string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository tạo kho cấu hình
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get đọc giá trị, trả về chuỗi rỗng khi khóa không tồn tại
func (r *settingRepository) Get(name string) (string, error) {
	var setting model.Setting
	if err := r.db.Where("name = ?", name).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// GetOrDefault đọc giá trị, dùng fallback khi vắng mặt hoặc lỗi
func (r *settingRepository) GetOrDefault(name, fallback string) string {
	value, err := r.Get(name)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

// Set ghi giá trị
func (r *settingRepository) Set(name, value string) error {
	setting := model.Setting{
		Name:      name,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.Save(&setting).Error
}

// Delete xóa khóa
func (r *settingRepository) Delete(name string) error {
	return r.db.Where("name = ?", name).Delete(&model.Setting{}).Error
}
