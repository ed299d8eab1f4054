package model

// Role vai trò người dùng
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
)

// Valid kiểm tra vai trò hợp lệ
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// IsAdmin SUPER_ADMIN hoặc ADMIN
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// CanModerate vai trò được phép xác nhận đánh giá và hủy công việc
func (r Role) CanModerate() bool {
	return r.IsAdmin() || r == RoleManager
}

// Quadrant góc phần tư Eisenhower
type Quadrant string

const (
	QuadrantQ1 Quadrant = "Q1" // Khẩn cấp + quan trọng
	QuadrantQ2 Quadrant = "Q2"
	QuadrantQ3 Quadrant = "Q3"
	QuadrantQ4 Quadrant = "Q4"
)

// Valid kiểm tra góc phần tư hợp lệ
func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return true
	}
	return false
}

// Title tiêu đề hiển thị của góc phần tư
func (q Quadrant) Title() string {
	switch q {
	case QuadrantQ1:
		return "Làm ngay"
	case QuadrantQ2:
		return "Lên lịch"
	case QuadrantQ3:
		return "Giao việc"
	case QuadrantQ4:
		return "Loại bỏ"
	}
	return "KHÔNG XÁC ĐỊNH"
}

// TaskStatus trạng thái công việc
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusRedo       TaskStatus = "REDO"
	StatusPaused     TaskStatus = "PAUSED"
	StatusCancelled  TaskStatus = "CANCELLED"
	StatusClosed     TaskStatus = "CLOSED"
)

// AllStatuses danh sách mọi trạng thái (thứ tự hiển thị)
func AllStatuses() []TaskStatus {
	return []TaskStatus{
		StatusTodo, StatusInProgress, StatusDone,
		StatusRedo, StatusPaused, StatusCancelled, StatusClosed,
	}
}

// Valid kiểm tra trạng thái hợp lệ
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusRedo,
		StatusPaused, StatusCancelled, StatusClosed:
		return true
	}
	return false
}

// Title tiêu đề hiển thị của trạng thái, dùng trong nhật ký công việc
func (s TaskStatus) Title() string {
	switch s {
	case StatusTodo:
		return "CHƯA THỰC HIỆN"
	case StatusInProgress:
		return "ĐANG THỰC HIỆN"
	case StatusDone:
		return "HOÀN THÀNH"
	case StatusRedo:
		return "THỰC HIỆN LẠI"
	case StatusPaused:
		return "TẠM DỪNG"
	case StatusCancelled:
		return "HỦY"
	case StatusClosed:
		return "ĐÃ ĐÓNG"
	}
	return "KHÔNG XÁC ĐỊNH"
}

// TransitionAllowed bảng chuyển trạng thái
// CLOSED chỉ đi từ DONE và chỉ bởi người tạo hoặc admin/manager,
// CANCELLED chỉ bởi admin/manager, REDO chỉ đi từ DONE hoặc CANCELLED.
// Các cặp còn lại không bị giới hạn.
func TransitionAllowed(from, to TaskStatus, role Role, isCreator bool) bool {
	if from == to {
		return true
	}
	switch to {
	case StatusClosed:
		return from == StatusDone && (isCreator || role.CanModerate())
	case StatusCancelled:
		return role.CanModerate()
	case StatusRedo:
		return from == StatusDone || from == StatusCancelled
	}
	return true
}
