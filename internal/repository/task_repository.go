package repository

import (
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"gorm.io/gorm"
)

// TaskRepository kho công việc
type TaskRepository interface {
	Save(task *model.Task) error
	FindByID(id string) (*model.Task, error)
	FindAll() ([]*model.Task, error)
	AppendLogs(logs []model.TaskLog) error
	Update(task *model.Task, logs []model.TaskLog) error
	Delete(id string) error
	CountByStatus() (map[model.TaskStatus]int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository tạo kho công việc
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Save lưu công việc kèm nhật ký khởi tạo trong một giao dịch
func (r *taskRepository) Save(task *model.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		logs := task.Logs
		task.Logs = nil
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		task.Logs = logs
		if len(logs) > 0 {
			if err := tx.Create(&logs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID tìm công việc theo ID, nhật ký xếp theo thứ tự chèn
func (r *taskRepository) FindByID(id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("task_id = ?", id).Order("position ASC").Find(&task.Logs).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAll toàn bộ công việc, mới nhất trước
func (r *taskRepository) FindAll() ([]*model.Task, error) {
	var tasks []*model.Task
	if err := r.db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if err := r.db.Where("task_id = ?", t.ID).Order("position ASC").Find(&t.Logs).Error; err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// AppendLogs ghi thêm nhật ký
func (r *taskRepository) AppendLogs(logs []model.TaskLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.Create(&logs).Error
}

// Update lưu công việc đã sửa cùng nhật ký phát sinh trong một giao dịch
// Người đọc không bao giờ thấy công việc đổi mà thiếu nhật ký tương ứng.
func (r *taskRepository) Update(task *model.Task, logs []model.TaskLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		saved := *task
		saved.Logs = nil
		if err := tx.Save(&saved).Error; err != nil {
			return err
		}
		if len(logs) > 0 {
			if err := tx.Create(&logs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete xóa cứng công việc và nhật ký của nó
func (r *taskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Task{}).Error
	})
}

// CountByStatus đếm công việc theo trạng thái
func (r *taskRepository) CountByStatus() (map[model.TaskStatus]int64, error) {
	type row struct {
		Status model.TaskStatus
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&model.Task{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
