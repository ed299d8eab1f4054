package repository

import (
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/gorm"
)

// UserRepository kho nhân sự
type UserRepository interface {
	Save(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() ([]*model.User, error)
	FindActive() ([]*model.User, error)
	ReplaceAll(users []*model.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository tạo kho nhân sự
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Save lưu nhân sự
func (r *userRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

// FindByID tìm nhân sự theo ID (kể cả đã xóa mềm)
func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername tìm nhân sự đang hoạt động theo tên đăng nhập
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ? AND deleted_at IS NULL", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll toàn bộ nhân sự, kể cả đã xóa mềm
func (r *userRepository) FindAll() ([]*model.User, error) {
	var users []*model.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

// FindActive nhân sự chưa bị xóa mềm
func (r *userRepository) FindActive() ([]*model.User, error) {
	var users []*model.User
	err := r.db.Where("deleted_at IS NULL").Order("created_at ASC").Find(&users).Error
	return users, err
}

// ReplaceAll thay toàn bộ danh bạ bằng kết quả đồng bộ
func (r *userRepository) ReplaceAll(users []*model.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.User{}).Error; err != nil {
			return err
		}
		if len(users) > 0 {
			if err := tx.Create(&users).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
