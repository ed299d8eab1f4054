package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	syncbridge "github.com/V2Tn/KimTamCatCRM/internal/sync"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DepartmentService nghiệp vụ phòng ban
type DepartmentService interface {
	List() ([]*model.Department, error)
	Get(id string) (*model.Department, error)
	Create(actor *model.User, name string) (*model.Department, error)
	Rename(actor *model.User, id, name string) (*model.Department, error)
	Delete(actor *model.User, id string) error
}

type departmentService struct {
	departments repository.DepartmentRepository
	notifier    *syncbridge.Notifier
	logger      *logrus.Logger
}

// NewDepartmentService tạo nghiệp vụ phòng ban
func NewDepartmentService(departments repository.DepartmentRepository, notifier *syncbridge.Notifier, logger *logrus.Logger) DepartmentService {
	return &departmentService{departments: departments, notifier: notifier, logger: logger}
}

// List toàn bộ phòng ban
func (s *departmentService) List() ([]*model.Department, error) {
	return s.departments.FindAll()
}

// Get lấy phòng ban theo ID
func (s *departmentService) Get(id string) (*model.Department, error) {
	dept, err := s.departments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to load department: %w", err)
	}
	return dept, nil
}

// Create tạo phòng ban mới và báo thay đổi ra webhook ghi
func (s *departmentService) Create(actor *model.User, name string) (*model.Department, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Vui lòng nhập tên phòng ban"}
	}

	dept := &model.Department{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		CreatedBy: actor.ID,
	}
	if err := s.departments.Save(dept); err != nil {
		return nil, fmt.Errorf("failed to save department: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionCreateDept, dept)
	return dept, nil
}

// Rename đổi tên phòng ban
func (s *departmentService) Rename(actor *model.User, id, name string) (*model.Department, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Vui lòng nhập tên phòng ban"}
	}

	dept, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dept.Name = name
	dept.UpdatedAt = &now
	dept.UpdatedBy = actor.ID
	if err := s.departments.Save(dept); err != nil {
		return nil, fmt.Errorf("failed to save department: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionUpdateDept, dept)
	return dept, nil
}

// Delete xóa phòng ban
// Không cascade: nhân sự thuộc phòng ban giữ tham chiếu treo và được
// hiển thị là chưa phân bổ.
func (s *departmentService) Delete(actor *model.User, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.departments.Delete(id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionDeleteDept, map[string]string{"id": id})
	return nil
}
