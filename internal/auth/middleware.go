package auth

import (
	"net/http"
	"strings"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/gin-gonic/gin"
)

// contextUserKey khóa lưu người dùng hiện tại trong gin.Context
const contextUserKey = "current_user"

// Middleware kiểm tra Bearer token và nạp người dùng hiện tại
// Người dùng đã bị xóa mềm không được phép vào.
func Middleware(issuer *TokenIssuer, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "missing bearer token",
			})
			return
		}

		claims, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": err.Error(),
			})
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil || user.IsDeleted() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "user no longer active",
			})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser lấy người dùng hiện tại từ context
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// RequireModerator chặn người dùng không có quyền điều hành
func RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.CanModerate() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "permission denied",
			})
			return
		}
		c.Next()
	}
}
