package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Attachment tệp đính kèm (tên + nội dung data-URI)
type Attachment struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// AttachmentList danh sách tệp đính kèm, lưu dạng JSON TEXT
type AttachmentList []Attachment

// Value serialize danh sách tệp đính kèm
func (l AttachmentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserialize danh sách tệp đính kèm
func (l *AttachmentList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList danh sách chuỗi, lưu dạng JSON TEXT
type StringList []string

// Value serialize danh sách chuỗi
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserialize danh sách chuỗi
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains kiểm tra phần tử trong danh sách
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	}
	return fmt.Errorf("unsupported column type %T", value)
}

// Task công việc
type Task struct {
	ID                string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Quadrant          Quadrant       `gorm:"type:varchar(8);not null" json:"quadrant"`
	Status            TaskStatus     `gorm:"type:varchar(32);not null;index" json:"status"`
	AssigneeID        string         `gorm:"type:varchar(64);not null;index" json:"assigneeId"`
	CreatorID         string         `gorm:"type:varchar(64);not null;index" json:"creatorId"`
	FollowerIDs       StringList     `gorm:"type:text" json:"followerIds,omitempty"`
	DepartmentID      string         `gorm:"type:varchar(64);index" json:"departmentId,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;index" json:"createdAt"`
	StartDate         *time.Time     `json:"startDate,omitempty"`
	EndDate           *time.Time     `json:"endDate,omitempty"`
	Attachments       AttachmentList `gorm:"type:text" json:"attachments,omitempty"`
	ResultContent     string         `gorm:"type:text" json:"resultContent,omitempty"`
	ResultAttachments AttachmentList `gorm:"type:text" json:"resultAttachments,omitempty"`
	Evaluation        string         `gorm:"type:varchar(32)" json:"evaluation,omitempty"`
	Logs              []TaskLog      `gorm:"foreignKey:TaskID;references:ID" json:"logs,omitempty"`
}

// TableName chỉ định tên bảng
func (Task) TableName() string {
	return "tasks"
}

// Validate kiểm tra công việc
func (t *Task) Validate() error {
	if t.ID == "" {
		return errors.New("task ID is required")
	}
	if t.Title == "" {
		return errors.New("task title is required")
	}
	if !t.Quadrant.Valid() {
		return errors.New("task quadrant is invalid")
	}
	if !t.Status.Valid() {
		return errors.New("task status is invalid")
	}
	if t.AssigneeID == "" {
		return errors.New("task assignee is required")
	}
	if t.CreatorID == "" {
		return errors.New("task creator is required")
	}
	return nil
}

// Các mức đánh giá công việc được hỗ trợ
const (
	EvaluationExcellent = "Xuất Sắc"
	EvaluationGood      = "Tốt"
	EvaluationNormal    = "Bình thường"
	EvaluationBad       = "Tệ"
)

// TaskLog mục nhật ký công việc, chỉ ghi thêm, không sửa/xóa
type TaskLog struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TaskID    string    `gorm:"type:varchar(64);not null;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"` // thứ tự chèn trong một công việc
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	UserID    string    `gorm:"type:varchar(64);not null" json:"userId"`
}

// TableName chỉ định tên bảng
func (TaskLog) TableName() string {
	return "task_logs"
}

// Validate kiểm tra mục nhật ký
func (l *TaskLog) Validate() error {
	if l.ID == "" {
		return errors.New("task log ID is required")
	}
	if l.TaskID == "" {
		return errors.New("task log task ID is required")
	}
	if l.Content == "" {
		return errors.New("task log content is required")
	}
	if l.UserID == "" {
		return errors.New("task log user ID is required")
	}
	return nil
}
