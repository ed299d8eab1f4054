package repository

import (
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/gorm"
)

// DepartmentRepository kho phòng ban
type DepartmentRepository interface {
	Save(dept *model.Department) error
	FindByID(id string) (*model.Department, error)
	FindAll() ([]*model.Department, error)
	Delete(id string) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository tạo kho phòng ban
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

// Save lưu phòng ban
func (r *departmentRepository) Save(dept *model.Department) error {
	return r.db.Save(dept).Error
}

// FindByID tìm phòng ban theo ID
func (r *departmentRepository) FindByID(id string) (*model.Department, error) {
	var dept model.Department
	if err := r.db.Where("id = ?", id).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindAll toàn bộ phòng ban
func (r *departmentRepository) FindAll() ([]*model.Department, error) {
	var departments []*model.Department
	err := r.db.Order("created_at ASC").Find(&departments).Error
	return departments, err
}

// Delete xóa phòng ban
// Không cascade: nhân sự thuộc phòng ban giữ tham chiếu treo.
func (r *departmentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Department{}).Error
}
