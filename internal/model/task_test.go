package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentListValueScan(t *testing.T) {
	list := AttachmentList{{Name: "bao-cao.pdf", Data: "data:application/pdf;base64,AAAA"}}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned AttachmentList
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 1)
	assert.Equal(t, "bao-cao.pdf", scanned[0].Name)

	// Danh sách rỗng lưu thành mảng JSON rỗng
	empty := AttachmentList{}
	value, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	// Cột NULL giữ nguyên giá trị zero
	var fromNil AttachmentList
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil)
}

func TestStringListContains(t *testing.T) {
	list := StringList{"u-1", "u-2"}
	assert.True(t, list.Contains("u-1"))
	assert.False(t, list.Contains("u-3"))
	assert.False(t, StringList(nil).Contains("u-1"))
}

func TestTaskValidate(t *testing.T) {
	task := &Task{
		ID:         "t-1",
		Title:      "Việc hợp lệ",
		Quadrant:   QuadrantQ1,
		Status:     StatusTodo,
		AssigneeID: "u-1",
		CreatorID:  "u-2",
		CreatedAt:  time.Now(),
	}
	assert.NoError(t, task.Validate())

	task.Title = ""
	assert.Error(t, task.Validate())

	task.Title = "Việc"
	task.Quadrant = "Q9"
	assert.Error(t, task.Validate())
}

func TestTaskLogValidate(t *testing.T) {
	log := &TaskLog{
		ID:        "log-1",
		TaskID:    "t-1",
		Content:   "Tạo bởi Hệ thống",
		Timestamp: time.Now(),
		UserID:    "u-1",
	}
	assert.NoError(t, log.Validate())

	log.Content = ""
	assert.Error(t, log.Validate())
}
