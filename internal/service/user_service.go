package service

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	syncbridge "github.com/V2Tn/KimTamCatCRM/internal/sync"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService nghiệp vụ danh bạ nhân sự
type UserService interface {
	List(includeDeleted bool) ([]*model.User, error)
	Get(id string) (*model.User, error)
	Create(actor *model.User, req *CreateUserRequest) (*model.User, error)
	Update(actor *model.User, id string, req *UpdateUserRequest) (*model.User, error)
	Delete(actor *model.User, id string) error
	ReplaceAll(users []*model.User) error
	Authenticate(username, password string) (*model.User, error)
	Logout(id string) error
}

// CreateUserRequest yêu cầu tạo nhân sự
type CreateUserRequest struct {
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         model.Role `json:"role"`
	DepartmentID string     `json:"departmentId"`
	PhoneNumber  string     `json:"phoneNumber"`
	Password     string     `json:"password"`
	Gender       string     `json:"gender"`
	ImageAvatar  string     `json:"image_avatar"`
}

// UpdateUserRequest yêu cầu cập nhật từng phần
type UpdateUserRequest struct {
	Name         *string     `json:"name"`
	Username     *string     `json:"username"`
	Email        *string     `json:"email"`
	Role         *model.Role `json:"role"`
	DepartmentID *string     `json:"departmentId"`
	PhoneNumber  *string     `json:"phoneNumber"`
	Password     *string     `json:"password"`
	Gender       *string     `json:"gender"`
	ImageAvatar  *string     `json:"image_avatar"`
}

var nonDigitRe = regexp.MustCompile(`\D`)

type userService struct {
	users    repository.UserRepository
	notifier *syncbridge.Notifier
	logger   *logrus.Logger
}

// NewUserService tạo nghiệp vụ danh bạ
func NewUserService(users repository.UserRepository, notifier *syncbridge.Notifier, logger *logrus.Logger) UserService {
	return &userService{users: users, notifier: notifier, logger: logger}
}

// List danh sách nhân sự; mặc định chỉ trả người đang hoạt động
func (s *userService) List(includeDeleted bool) ([]*model.User, error) {
	if includeDeleted {
		return s.users.FindAll()
	}
	return s.users.FindActive()
}

// Get lấy nhân sự theo ID (kể cả đã xóa mềm)
func (s *userService) Get(id string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Create tạo nhân sự mới và báo thay đổi ra webhook ghi
func (s *userService) Create(actor *model.User, req *CreateUserRequest) (*model.User, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "Vui lòng nhập họ tên"}
	}
	if req.Username == "" {
		return nil, &ValidationError{Field: "username", Message: "Vui lòng nhập tên đăng nhập"}
	}
	if err := validatePhone(req.PhoneNumber); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(req.Username, ""); err != nil {
		return nil, err
	}

	role := req.Role
	if !role.Valid() {
		role = model.RoleStaff
	}
	gender := req.Gender
	if gender == "" {
		gender = "Nam"
	}
	password := req.Password
	if password == "" {
		password = "123456"
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Role:         role,
		DepartmentID: req.DepartmentID,
		IsOnline:     model.OnlineNo,
		PhoneNumber:  req.PhoneNumber,
		Password:     password,
		Gender:       gender,
		ImageAvatar:  req.ImageAvatar,
		CreatedAt:    time.Now(),
		CreatedBy:    actor.ID,
	}

	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionCreateUser, user)
	return user, nil
}

// Update cập nhật nhân sự và báo thay đổi ra webhook ghi
func (s *userService) Update(actor *model.User, id string, req *UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if *req.Username == "" {
			return nil, &ValidationError{Field: "username", Message: "Vui lòng nhập tên đăng nhập"}
		}
		if err := s.ensureUsernameFree(*req.Username, id); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.PhoneNumber != nil {
		if err := validatePhone(*req.PhoneNumber); err != nil {
			return nil, err
		}
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil && req.Role.Valid() {
		user.Role = *req.Role
	}
	if req.DepartmentID != nil {
		user.DepartmentID = *req.DepartmentID
	}
	if req.Password != nil && *req.Password != "" {
		user.Password = *req.Password
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.ImageAvatar != nil {
		user.ImageAvatar = *req.ImageAvatar
	}

	now := time.Now()
	user.UpdatedAt = &now
	user.UpdatedBy = actor.ID

	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionUpdateUser, user)
	return user, nil
}

// Delete xóa mềm: bản ghi được giữ lại và lọc khỏi các view hoạt động
func (s *userService) Delete(actor *model.User, id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.IsDeleted() {
		return nil
	}

	now := time.Now()
	user.DeletedAt = &now
	user.DeletedBy = actor.ID
	user.IsOnline = model.OnlineNo

	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.notifier.Notify(syncbridge.ActionDeleteUser, map[string]string{"id": id})
	return nil
}

// ReplaceAll thay toàn bộ danh bạ bằng kết quả đồng bộ từ webhook đọc
func (s *userService) ReplaceAll(users []*model.User) error {
	if err := s.users.ReplaceAll(users); err != nil {
		return fmt.Errorf("failed to replace directory: %w", err)
	}
	s.logger.WithField("count", len(users)).Info("directory replaced from sync")
	return nil
}

// Authenticate so khớp tên đăng nhập và mật khẩu (plaintext theo
// thiết kế hiện tại) rồi đánh dấu online
func (s *userService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	user.IsOnline = model.OnlineYes
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Logout đánh dấu offline
func (s *userService) Logout(id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	user.IsOnline = model.OnlineNo
	if err := s.users.Save(user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *userService) ensureUsernameFree(username, selfID string) error {
	existing, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != selfID {
		return &ValidationError{Field: "username", Message: "Tên đăng nhập đã tồn tại"}
	}
	return nil
}

// validatePhone số điện thoại hợp lệ khi phần chữ số dài 9-11 ký tự
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) < 9 || len(digits) > 11 {
		return &ValidationError{Field: "phoneNumber", Message: "Số điện thoại không hợp lệ"}
	}
	return nil
}
