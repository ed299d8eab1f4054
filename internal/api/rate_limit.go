package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware giới hạn tần suất request toàn cục
// Đồng bộ danh bạ và upload tệp đính kèm có thể tạo loạt request dồn dập,
// burst cho phép hấp thụ các đợt này mà không chặn nhầm.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			Error(c, http.StatusTooManyRequests, "Hệ thống đang quá tải, vui lòng thử lại sau", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
