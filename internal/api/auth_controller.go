package api

import (
	"encoding/json"
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthController đăng nhập và đăng xuất
type AuthController struct {
	users    service.UserService
	issuer   *auth.TokenIssuer
	settings repository.SettingRepository
}

// NewAuthController tạo controller xác thực
func NewAuthController(users service.UserService, issuer *auth.TokenIssuer, settings repository.SettingRepository) *AuthController {
	return &AuthController{users: users, issuer: issuer, settings: settings}
}

// loginRequest thân yêu cầu đăng nhập
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// Login xác thực và phát hành token phiên
// Khi người dùng chọn ghi nhớ, tên đăng nhập được lưu vào danh sách
// gợi ý đăng nhập.
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "Vui lòng nhập tên đăng nhập và mật khẩu", err.Error())
		return
	}

	user, err := c.users.Authenticate(req.Username, req.Password)
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	token, err := c.issuer.Issue(user.ID, string(user.Role))
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
		return
	}

	if req.Remember {
		c.rememberLogin(user.Username)
	}

	Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout đánh dấu người dùng hiện tại offline
func (c *AuthController) Logout(ctx *gin.Context) {
	actor := auth.CurrentUser(ctx)
	if actor == nil {
		Error(ctx, http.StatusUnauthorized, "missing bearer token", "")
		return
	}

	if err := c.users.Logout(actor.ID); err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, nil)
}

// RememberedLogins danh sách tên đăng nhập đã ghi nhớ
func (c *AuthController) RememberedLogins(ctx *gin.Context) {
	Success(ctx, c.loadRemembered())
}

// rememberLogin thêm tên đăng nhập vào danh sách ghi nhớ, không trùng lặp
func (c *AuthController) rememberLogin(username string) {
	remembered := c.loadRemembered()
	for _, name := range remembered {
		if name == username {
			return
		}
	}
	remembered = append(remembered, username)

	if raw, err := json.Marshal(remembered); err == nil {
		_ = c.settings.Set(model.SettingRememberedLogins, string(raw))
	}
}

// loadRemembered đọc danh sách ghi nhớ; vắng mặt nghĩa là danh sách rỗng
func (c *AuthController) loadRemembered() []string {
	raw := c.settings.GetOrDefault(model.SettingRememberedLogins, "[]")
	var remembered []string
	if err := json.Unmarshal([]byte(raw), &remembered); err != nil {
		return []string{}
	}
	return remembered
}
