package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/metrics"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TaskService nghiệp vụ công việc
type TaskService interface {
	VisibleTasks(actor *model.User) ([]*model.Task, error)
	Get(actor *model.User, id string) (*model.Task, error)
	Stats(actor *model.User) (*TaskStats, error)
	Create(actor *model.User, req *CreateTaskRequest) ([]*model.Task, error)
	Update(actor *model.User, id string, req *UpdateTaskRequest) (*model.Task, error)
	MarkDone(actor *model.User, id string) (*model.Task, error)
	Delete(actor *model.User, id string) error
}

// CreateTaskRequest yêu cầu tạo công việc
// Nhiều AssigneeIDs sẽ tạo ra chừng đó công việc độc lập.
type CreateTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Quadrant    model.Quadrant     `json:"quadrant"`
	StartDate   *time.Time         `json:"startDate"`
	EndDate     *time.Time         `json:"endDate"`
	Attachments []model.Attachment `json:"attachments"`
	AssigneeIDs []string           `json:"assigneeIds"`
	FollowerIDs []string           `json:"followerIds"`
}

// UpdateTaskRequest yêu cầu cập nhật từng phần
// Trường nil nghĩa là giữ nguyên.
type UpdateTaskRequest struct {
	Title             *string             `json:"title"`
	Description       *string             `json:"description"`
	Quadrant          *model.Quadrant     `json:"quadrant"`
	Status            *model.TaskStatus   `json:"status"`
	AssigneeID        *string             `json:"assigneeId"`
	FollowerIDs       *[]string           `json:"followerIds"`
	DepartmentID      *string             `json:"departmentId"`
	StartDate         *time.Time          `json:"startDate"`
	EndDate           *time.Time          `json:"endDate"`
	Attachments       *[]model.Attachment `json:"attachments"`
	ResultContent     *string             `json:"resultContent"`
	ResultAttachments *[]model.Attachment `json:"resultAttachments"`
	Evaluation        *string             `json:"evaluation"`
}

// TaskStats thống kê cá nhân: một bộ đếm cho mỗi trạng thái
// Total luôn bằng tổng các bộ đếm.
type TaskStats struct {
	Done      int `json:"done"`
	Doing     int `json:"doing"`
	Todo      int `json:"todo"`
	Redo      int `json:"redo"`
	Paused    int `json:"paused"`
	Cancelled int `json:"cancelled"`
	Closed    int `json:"closed"`
	Total     int `json:"total"`
}

type taskService struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewTaskService tạo nghiệp vụ công việc
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, logger *logrus.Logger) TaskService {
	return &taskService{tasks: tasks, users: users, logger: logger}
}

// VisibleTasks tập công việc mà actor được thấy, mới nhất trước
// SUPER_ADMIN/ADMIN thấy tất cả; MANAGER thấy theo phòng ban hoặc khi
// liên quan trực tiếp; STAFF chỉ thấy khi là người thực hiện, người tạo
// hoặc người theo dõi.
func (s *taskService) VisibleTasks(actor *model.User) ([]*model.Task, error) {
	all, err := s.tasks.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	if actor.Role.IsAdmin() {
		return all, nil
	}

	visible := make([]*model.Task, 0, len(all))
	for _, t := range all {
		if s.visibleTo(t, actor) {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

func (s *taskService) visibleTo(t *model.Task, actor *model.User) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	involved := t.AssigneeID == actor.ID ||
		t.CreatorID == actor.ID ||
		t.FollowerIDs.Contains(actor.ID)
	if actor.Role == model.RoleManager {
		return involved || (t.DepartmentID != "" && t.DepartmentID == actor.DepartmentID)
	}
	return involved
}

// Get lấy một công việc trong phạm vi nhìn thấy của actor
func (s *taskService) Get(actor *model.User, id string) (*model.Task, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if !s.visibleTo(task, actor) {
		return nil, ErrForbidden
	}
	return task, nil
}

// Stats đếm công việc actor trực tiếp tham gia (là người tạo hoặc
// người thực hiện) theo từng trạng thái
func (s *taskService) Stats(actor *model.User) (*TaskStats, error) {
	visible, err := s.VisibleTasks(actor)
	if err != nil {
		return nil, err
	}

	stats := &TaskStats{}
	for _, t := range visible {
		if t.AssigneeID != actor.ID && t.CreatorID != actor.ID {
			continue
		}
		switch t.Status {
		case model.StatusDone:
			stats.Done++
		case model.StatusInProgress:
			stats.Doing++
		case model.StatusTodo:
			stats.Todo++
		case model.StatusRedo:
			stats.Redo++
		case model.StatusPaused:
			stats.Paused++
		case model.StatusCancelled:
			stats.Cancelled++
		case model.StatusClosed:
			stats.Closed++
		}
	}
	stats.Total = stats.Done + stats.Doing + stats.Todo + stats.Redo +
		stats.Paused + stats.Cancelled + stats.Closed
	return stats, nil
}

// Create tạo công việc, fan-out theo danh sách người thực hiện
// Không chọn người thực hiện thì actor tự nhận việc. Mỗi người thực hiện
// nhận một bản ghi độc lập với ID riêng và phòng ban lấy theo chính họ
// (không có thì lấy theo người tạo).
func (s *taskService) Create(actor *model.User, req *CreateTaskRequest) ([]*model.Task, error) {
	if req.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "Vui lòng nhập tiêu đề công việc"}
	}

	quadrant := req.Quadrant
	if quadrant == "" {
		quadrant = model.QuadrantQ1
	}
	if !quadrant.Valid() {
		return nil, &ValidationError{Field: "quadrant", Message: "Góc phần tư không hợp lệ"}
	}

	assigneeIDs := req.AssigneeIDs
	if len(assigneeIDs) == 0 {
		assigneeIDs = []string{actor.ID}
	}

	created := make([]*model.Task, 0, len(assigneeIDs))
	now := time.Now()
	for _, assigneeID := range assigneeIDs {
		assignee, err := s.users.FindByID(assigneeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "assigneeIds", Message: "Người thực hiện không tồn tại"}
			}
			return nil, fmt.Errorf("failed to load assignee: %w", err)
		}

		departmentID := assignee.DepartmentID
		if departmentID == "" {
			departmentID = actor.DepartmentID
		}

		content := fmt.Sprintf("Tạo bởi %s", actor.Name)
		if assigneeID != actor.ID {
			content += fmt.Sprintf(" giao cho %s", assignee.Name)
		}

		task := &model.Task{
			ID:           "t-" + uuid.NewString(),
			Title:        req.Title,
			Description:  req.Description,
			Quadrant:     quadrant,
			Status:       model.StatusTodo,
			AssigneeID:   assigneeID,
			CreatorID:    actor.ID,
			FollowerIDs:  req.FollowerIDs,
			DepartmentID: departmentID,
			CreatedAt:    now,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Attachments:  req.Attachments,
		}
		task.Logs = []model.TaskLog{s.newLogEntry(task.ID, 0, content, actor.ID)}

		if err := s.tasks.Save(task); err != nil {
			return nil, fmt.Errorf("failed to save task: %w", err)
		}
		metrics.RecordTaskCreated()
		created = append(created, task)
	}

	return created, nil
}

// Update áp dụng cập nhật từng phần và sinh nhật ký theo thứ tự cố định:
// điều phối lại → (yêu cầu làm lại HOẶC báo cáo kết quả/đổi trạng thái)
// → xác nhận đánh giá. Thay đổi và nhật ký ghi trong cùng một giao dịch.
func (s *taskService) Update(actor *model.User, id string, req *UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	// Guard chuyển trạng thái (bảng chuyển nằm ở tầng lõi)
	if req.Status != nil && *req.Status != task.Status {
		if !req.Status.Valid() {
			return nil, &ValidationError{Field: "status", Message: "Trạng thái không hợp lệ"}
		}
		if !model.TransitionAllowed(task.Status, *req.Status, actor.Role, task.CreatorID == actor.ID) {
			return nil, &IllegalTransitionError{From: task.Status, To: *req.Status}
		}
	}

	var newLogs []model.TaskLog
	pos := len(task.Logs)
	addLog := func(content string) {
		newLogs = append(newLogs, s.newLogEntry(task.ID, pos, content, actor.ID))
		pos++
	}

	// 1. Điều phối lại người thực hiện
	if req.AssigneeID != nil && *req.AssigneeID != task.AssigneeID {
		if _, err := s.users.FindByID(*req.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ValidationError{Field: "assigneeId", Message: "Người thực hiện không tồn tại"}
			}
			return nil, fmt.Errorf("failed to load assignee: %w", err)
		}
		addLog(fmt.Sprintf("%s đã điều phối lại công việc từ %s sang %s",
			actor.Name, s.userName(task.AssigneeID), s.userName(*req.AssigneeID)))
	}

	// 2. Yêu cầu làm lại sau khi đã hoàn thành: ghi lại đánh giá cũ
	// và xóa đánh giá; loại trừ lẫn nhau với nhánh 3
	redoDemotion := req.Status != nil && *req.Status == model.StatusRedo && task.Status == model.StatusDone
	if redoDemotion {
		oldEvaluation := task.Evaluation
		if oldEvaluation == "" {
			oldEvaluation = "Chưa có"
		}
		addLog(fmt.Sprintf("%s yêu cầu thực hiện lại (Đánh giá cũ: %s)", actor.Name, oldEvaluation))
	} else {
		// 3. Báo cáo kết quả thay thế log đổi trạng thái đơn thuần
		statusTitle := task.Status.Title()
		if req.Status != nil {
			statusTitle = req.Status.Title()
		}
		if req.ResultContent != nil && *req.ResultContent != task.ResultContent {
			addLog(fmt.Sprintf("%s báo cáo kết quả: %s (Trạng thái: %s)",
				actor.Name, truncateResult(*req.ResultContent), statusTitle))
		} else if req.Status != nil && *req.Status != task.Status {
			addLog(fmt.Sprintf("%s đã cập nhật trạng thái thành %s", actor.Name, statusTitle))
		}
	}

	// 4. Xác nhận đánh giá: chỉ admin/manager mới được ghi nhật ký,
	// giá trị vẫn được áp dụng cho mọi vai trò
	if req.Evaluation != nil && *req.Evaluation != task.Evaluation && actor.Role.CanModerate() {
		addLog(fmt.Sprintf("%s đã xác nhận đánh giá: %s", actor.Name, *req.Evaluation))
	}

	s.applyUpdates(task, req)
	if redoDemotion {
		task.Evaluation = ""
	}

	if err := s.tasks.Update(task, newLogs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	task.Logs = append(task.Logs, newLogs...)

	return task, nil
}

// applyUpdates áp dụng mọi trường được gửi lên, bất kể có sinh log hay không
func (s *taskService) applyUpdates(task *model.Task, req *UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Quadrant != nil {
		task.Quadrant = *req.Quadrant
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.AssigneeID != nil {
		task.AssigneeID = *req.AssigneeID
	}
	if req.FollowerIDs != nil {
		task.FollowerIDs = *req.FollowerIDs
	}
	if req.DepartmentID != nil {
		task.DepartmentID = *req.DepartmentID
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = req.EndDate
	}
	if req.Attachments != nil {
		task.Attachments = *req.Attachments
	}
	if req.ResultContent != nil {
		task.ResultContent = *req.ResultContent
	}
	if req.ResultAttachments != nil {
		task.ResultAttachments = *req.ResultAttachments
	}
	if req.Evaluation != nil {
		task.Evaluation = *req.Evaluation
	}
}

// MarkDone chuyển nhanh công việc sang HOÀN THÀNH
func (s *taskService) MarkDone(actor *model.User, id string) (*model.Task, error) {
	done := model.StatusDone
	return s.Update(actor, id, &UpdateTaskRequest{Status: &done})
}

// Delete xóa cứng công việc; STAFF chỉ được xóa việc mình tạo
func (s *taskService) Delete(actor *model.User, id string) error {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to load task: %w", err)
	}

	if actor.Role == model.RoleStaff && task.CreatorID != actor.ID {
		return ErrForbidden
	}

	if err := s.tasks.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"task_id": id,
		"user_id": actor.ID,
	}).Info("task deleted")
	return nil
}

func (s *taskService) newLogEntry(taskID string, position int, content, userID string) model.TaskLog {
	return model.TaskLog{
		ID:        "log-" + uuid.NewString(),
		TaskID:    taskID,
		Position:  position,
		Content:   content,
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

func (s *taskService) userName(id string) string {
	user, err := s.users.FindByID(id)
	if err != nil {
		return "N/A"
	}
	return user.Name
}

// truncateResult cắt nội dung báo cáo còn tối đa 30 ký tự
func truncateResult(s string) string {
	runes := []rune(s)
	if len(runes) <= 30 {
		return s
	}
	return string(runes[:30]) + "..."
}
