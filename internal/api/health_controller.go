package api

import (
	"context"
	"net/http"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController kiểm tra sức khỏe hệ thống
type HealthController struct {
	db       *gorm.DB
	settings repository.SettingRepository
}

// NewHealthController tạo controller kiểm tra sức khỏe
func NewHealthController(db *gorm.DB, settings repository.SettingRepository) *HealthController {
	return &HealthController{db: db, settings: settings}
}

// Check trả về trạng thái hệ thống và các kiểm tra thành phần
func (c *HealthController) Check(ctx *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	if c.db != nil {
		if err := c.checkDatabase(ctx.Request.Context()); err != nil {
			status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	// Webhook chưa cấu hình không phải lỗi, chỉ báo trạng thái
	if c.settings != nil {
		if url, _ := c.settings.Get(model.SettingReadURL); url != "" {
			checks["sync_webhook"] = "configured"
		} else {
			checks["sync_webhook"] = "not configured"
		}
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}

// checkDatabase kiểm tra kết nối cơ sở dữ liệu
func (c *HealthController) checkDatabase(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
