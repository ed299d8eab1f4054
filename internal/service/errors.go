package service

import (
	"errors"
	"fmt"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
)

// Các lỗi nghiệp vụ dùng chung
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("Tên đăng nhập hoặc mật khẩu không đúng")
)

// ValidationError lỗi dữ liệu đầu vào, gắn với một trường cụ thể
// Thông điệp hiển thị trực tiếp cho người dùng.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IllegalTransitionError chuyển trạng thái không được phép
type IllegalTransitionError struct {
	From model.TaskStatus
	To   model.TaskStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

// IsNotFound kiểm tra lỗi không tìm thấy
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDepartmentNotFound)
}
