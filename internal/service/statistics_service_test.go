package service

import (
	"testing"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentStats(t *testing.T) {
	deptA := &model.Department{ID: "d-1", Name: "Kinh doanh"}
	deptB := &model.Department{ID: "d-2", Name: "Media"}
	deptRepo := newFakeDeptRepo(deptA, deptB)

	staffA := &model.User{ID: "u-a", Name: "A", Username: "a", Role: model.RoleStaff, DepartmentID: "d-1"}
	staffB := &model.User{ID: "u-b", Name: "B", Username: "b", Role: model.RoleStaff, DepartmentID: "d-1"}
	staffC := &model.User{ID: "u-c", Name: "C", Username: "c", Role: model.RoleStaff, DepartmentID: "d-2"}
	userRepo := newFakeUserRepo(staffA, staffB, staffC)

	taskRepo := newFakeTaskRepo()
	seed := []struct {
		assignee string
		dept     string
		status   model.TaskStatus
	}{
		{"u-a", "d-1", model.StatusDone},
		{"u-a", "d-1", model.StatusClosed},
		{"u-a", "d-1", model.StatusInProgress},
		{"u-b", "d-1", model.StatusTodo},
		{"u-c", "d-2", model.StatusDone},
	}
	for i, s := range seed {
		require.NoError(t, taskRepo.Save(&model.Task{
			ID:           "t-" + string(rune('a'+i)),
			Title:        "Việc",
			Quadrant:     model.QuadrantQ1,
			Status:       s.status,
			AssigneeID:   s.assignee,
			CreatorID:    "u-a",
			DepartmentID: s.dept,
		}))
	}

	svc := NewStatisticsService(taskRepo, userRepo, deptRepo)
	stats, err := svc.DepartmentStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byName := make(map[string]*DepartmentStats)
	for _, ds := range stats {
		byName[ds.DepartmentName] = ds
	}

	// HOÀN THÀNH và ĐÃ ĐÓNG đều tính là hoàn tất
	kinhDoanh := byName["Kinh doanh"]
	require.NotNil(t, kinhDoanh)
	assert.Equal(t, 4, kinhDoanh.Total)
	assert.Equal(t, 2, kinhDoanh.Done)
	assert.InDelta(t, 50.0, kinhDoanh.Percentage, 0.01)
	require.Len(t, kinhDoanh.Members, 2)

	media := byName["Media"]
	require.NotNil(t, media)
	assert.Equal(t, 1, media.Total)
	assert.InDelta(t, 100.0, media.Percentage, 0.01)

	// Phòng có tỷ lệ cao xếp trước
	assert.Equal(t, "Media", stats[0].DepartmentName)

	// Chi tiết thành viên
	var memberA *UserStats
	for i := range kinhDoanh.Members {
		if kinhDoanh.Members[i].UserID == "u-a" {
			memberA = &kinhDoanh.Members[i]
		}
	}
	require.NotNil(t, memberA)
	assert.Equal(t, 3, memberA.Total)
	assert.Equal(t, 2, memberA.Done)
	assert.InDelta(t, 66.7, memberA.Percentage, 0.01)
}

func TestDepartmentStatsEmpty(t *testing.T) {
	dept := &model.Department{ID: "d-1", Name: "Kế toán"}
	svc := NewStatisticsService(newFakeTaskRepo(), newFakeUserRepo(), newFakeDeptRepo(dept))

	stats, err := svc.DepartmentStats()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Total)
	assert.Equal(t, 0.0, stats[0].Percentage)
}
