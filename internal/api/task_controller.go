package api

import (
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// TaskController quản lý công việc
type TaskController struct {
	tasks service.TaskService
}

// NewTaskController tạo controller công việc
func NewTaskController(tasks service.TaskService) *TaskController {
	return &TaskController{tasks: tasks}
}

// List danh sách công việc trong phạm vi nhìn thấy của người gọi
func (c *TaskController) List(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	tasks, err := c.tasks.VisibleTasks(actor)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, tasks)
}

// Get chi tiết một công việc
func (c *TaskController) Get(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	task, err := c.tasks.Get(actor, ctx.Param("id"))
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, task)
}

// Stats bộ đếm công việc cá nhân theo trạng thái
func (c *TaskController) Stats(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	stats, err := c.tasks.Stats(actor)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, stats)
}

// Create tạo công việc, giao nhiều người thì tách thành nhiều bản ghi
func (c *TaskController) Create(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req service.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	created, err := c.tasks.Create(actor, &req)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, created)
}

// Update cập nhật từng phần một công việc
func (c *TaskController) Update(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req service.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	task, err := c.tasks.Update(actor, ctx.Param("id"), &req)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, task)
}

// MarkDone chuyển nhanh công việc sang HOÀN THÀNH
func (c *TaskController) MarkDone(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	task, err := c.tasks.MarkDone(actor, ctx.Param("id"))
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, task)
}

// Delete xóa cứng công việc cùng nhật ký
func (c *TaskController) Delete(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	if err := c.tasks.Delete(actor, ctx.Param("id")); err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}
