package api

import (
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// DepartmentController quản lý phòng ban
type DepartmentController struct {
	departments service.DepartmentService
}

// NewDepartmentController tạo controller phòng ban
func NewDepartmentController(departments service.DepartmentService) *DepartmentController {
	return &DepartmentController{departments: departments}
}

// departmentRequest thân yêu cầu tạo hoặc đổi tên phòng ban
type departmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// List toàn bộ phòng ban
func (c *DepartmentController) List(ctx *gin.Context) {
	departments, err := c.departments.List()
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, departments)
}

// Create tạo phòng ban mới
func (c *DepartmentController) Create(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req departmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "Vui lòng nhập tên phòng ban", err.Error())
		return
	}

	dept, err := c.departments.Create(actor, req.Name)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, dept)
}

// Update đổi tên phòng ban
func (c *DepartmentController) Update(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req departmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "Vui lòng nhập tên phòng ban", err.Error())
		return
	}

	dept, err := c.departments.Rename(actor, ctx.Param("id"), req.Name)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, dept)
}

// Delete xóa phòng ban; nhân sự trực thuộc không bị xóa theo
func (c *DepartmentController) Delete(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	if err := c.departments.Delete(actor, ctx.Param("id")); err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}
