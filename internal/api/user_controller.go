package api

import (
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// UserController quản lý nhân sự
type UserController struct {
	users service.UserService
}

// NewUserController tạo controller nhân sự
func NewUserController(users service.UserService) *UserController {
	return &UserController{users: users}
}

// List danh sách nhân sự; ?all=true trả cả người đã xóa mềm
func (c *UserController) List(ctx *gin.Context) {
	includeDeleted := ctx.Query("all") == "true"

	users, err := c.users.List(includeDeleted)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, users)
}

// Get chi tiết một nhân sự
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.users.Get(ctx.Param("id"))
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, user)
}

// Create tạo nhân sự mới
func (c *UserController) Create(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.users.Create(actor, &req)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, user)
}

// Update cập nhật từng phần một nhân sự
func (c *UserController) Update(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := c.users.Update(actor, ctx.Param("id"), &req)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, user)
}

// Delete xóa mềm một nhân sự
func (c *UserController) Delete(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)

	if err := c.users.Delete(actor, ctx.Param("id")); err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}
