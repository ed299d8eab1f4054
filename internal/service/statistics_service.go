package service

import (
	"fmt"
	"sort"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
)

// DepartmentStats kết quả hoàn thành công việc của một phòng ban
type DepartmentStats struct {
	DepartmentID   string      `json:"departmentId"`
	DepartmentName string      `json:"departmentName"`
	Total          int         `json:"total"`
	Done           int         `json:"done"`
	Percentage     float64     `json:"percentage"`
	Members        []UserStats `json:"members"`
}

// UserStats kết quả hoàn thành công việc của một nhân sự
type UserStats struct {
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName"`
	Total      int     `json:"total"`
	Done       int     `json:"done"`
	Percentage float64 `json:"percentage"`
}

// StatisticsService thống kê hiệu suất theo phòng ban và nhân sự
type StatisticsService interface {
	DepartmentStats() ([]*DepartmentStats, error)
}

type statisticsService struct {
	tasks       repository.TaskRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
}

// NewStatisticsService tạo dịch vụ thống kê
func NewStatisticsService(tasks repository.TaskRepository, users repository.UserRepository, departments repository.DepartmentRepository) StatisticsService {
	return &statisticsService{tasks: tasks, users: users, departments: departments}
}

// DepartmentStats gom công việc theo phòng ban của người được giao
// Tỷ lệ hoàn thành tính trên HOÀN THÀNH và ĐÃ ĐÓNG so với tổng việc.
func (s *statisticsService) DepartmentStats() ([]*DepartmentStats, error) {
	departments, err := s.departments.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	users, err := s.users.FindActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	tasks, err := s.tasks.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	byUser := make(map[string]*UserStats, len(users))
	deptOfUser := make(map[string]string, len(users))
	for _, u := range users {
		byUser[u.ID] = &UserStats{UserID: u.ID, UserName: u.Name}
		deptOfUser[u.ID] = u.DepartmentID
	}

	byDept := make(map[string]*DepartmentStats, len(departments))
	for _, d := range departments {
		byDept[d.ID] = &DepartmentStats{DepartmentID: d.ID, DepartmentName: d.Name}
	}

	for _, t := range tasks {
		done := t.Status == model.StatusDone || t.Status == model.StatusClosed

		if us, ok := byUser[t.AssigneeID]; ok {
			us.Total++
			if done {
				us.Done++
			}
		}

		deptID := t.DepartmentID
		if deptID == "" {
			deptID = deptOfUser[t.AssigneeID]
		}
		if ds, ok := byDept[deptID]; ok {
			ds.Total++
			if done {
				ds.Done++
			}
		}
	}

	for _, us := range byUser {
		us.Percentage = percentage(us.Done, us.Total)
	}

	result := make([]*DepartmentStats, 0, len(departments))
	for _, d := range departments {
		ds := byDept[d.ID]
		ds.Percentage = percentage(ds.Done, ds.Total)
		for _, u := range users {
			if u.DepartmentID == d.ID {
				ds.Members = append(ds.Members, *byUser[u.ID])
			}
		}
		sort.Slice(ds.Members, func(i, j int) bool {
			return ds.Members[i].Done > ds.Members[j].Done
		})
		result = append(result, ds)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Percentage > result[j].Percentage
	})
	return result, nil
}

// percentage tỷ lệ phần trăm làm tròn một chữ số thập phân
func percentage(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(int(float64(done)/float64(total)*1000+0.5)) / 10
}
