package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleChecks(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, RoleStaff.IsAdmin())

	assert.True(t, RoleManager.CanModerate())
	assert.False(t, RoleStaff.CanModerate())

	assert.False(t, Role("BOSS").Valid())
}

func TestStatusTitles(t *testing.T) {
	cases := map[TaskStatus]string{
		StatusTodo:       "CHƯA THỰC HIỆN",
		StatusInProgress: "ĐANG THỰC HIỆN",
		StatusDone:       "HOÀN THÀNH",
		StatusRedo:       "THỰC HIỆN LẠI",
		StatusPaused:     "TẠM DỪNG",
		StatusCancelled:  "HỦY",
		StatusClosed:     "ĐÃ ĐÓNG",
	}
	for status, title := range cases {
		assert.Equal(t, title, status.Title())
	}
	assert.Equal(t, "KHÔNG XÁC ĐỊNH", TaskStatus("UNKNOWN").Title())
}

func TestTransitionAllowed(t *testing.T) {
	// CLOSED chỉ đi từ DONE, bởi người tạo hoặc admin/manager
	assert.True(t, TransitionAllowed(StatusDone, StatusClosed, RoleStaff, true))
	assert.True(t, TransitionAllowed(StatusDone, StatusClosed, RoleManager, false))
	assert.False(t, TransitionAllowed(StatusDone, StatusClosed, RoleStaff, false))
	assert.False(t, TransitionAllowed(StatusTodo, StatusClosed, RoleSuperAdmin, true))

	// CANCELLED chỉ bởi admin/manager, từ bất kỳ trạng thái nào
	assert.True(t, TransitionAllowed(StatusTodo, StatusCancelled, RoleAdmin, false))
	assert.True(t, TransitionAllowed(StatusInProgress, StatusCancelled, RoleManager, false))
	assert.False(t, TransitionAllowed(StatusInProgress, StatusCancelled, RoleStaff, true))

	// REDO chỉ đi từ DONE hoặc CANCELLED
	assert.True(t, TransitionAllowed(StatusDone, StatusRedo, RoleStaff, false))
	assert.True(t, TransitionAllowed(StatusCancelled, StatusRedo, RoleStaff, false))
	assert.False(t, TransitionAllowed(StatusInProgress, StatusRedo, RoleSuperAdmin, true))

	// Các cặp còn lại tự do
	assert.True(t, TransitionAllowed(StatusTodo, StatusInProgress, RoleStaff, false))
	assert.True(t, TransitionAllowed(StatusPaused, StatusInProgress, RoleStaff, false))
	assert.True(t, TransitionAllowed(StatusRedo, StatusDone, RoleStaff, false))

	// Giữ nguyên trạng thái luôn hợp lệ
	for _, status := range AllStatuses() {
		assert.True(t, TransitionAllowed(status, status, RoleStaff, false))
	}
}
