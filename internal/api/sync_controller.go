package api

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/metrics"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	syncbridge "github.com/V2Tn/KimTamCatCRM/internal/sync"
	"github.com/gin-gonic/gin"
)

// SyncController đồng bộ danh bạ nhân sự từ webhook đọc
type SyncController struct {
	ingestor *syncbridge.Ingestor
	users    service.UserService
	settings repository.SettingRepository
	inFlight atomic.Bool
}

// NewSyncController tạo controller đồng bộ
func NewSyncController(ingestor *syncbridge.Ingestor, users service.UserService, settings repository.SettingRepository) *SyncController {
	return &SyncController{ingestor: ingestor, users: users, settings: settings}
}

// Run chạy một phiên đồng bộ danh bạ
// Mỗi thời điểm chỉ một phiên được chạy; gọi chồng trả về 409.
func (c *SyncController) Run(ctx *gin.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		Error(ctx, http.StatusConflict, "Đang đồng bộ, vui lòng chờ...", "")
		return
	}
	defer c.inFlight.Store(false)

	url, err := c.settings.Get(model.SettingReadURL)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
		return
	}

	users, err := c.ingestor.FetchUsers(ctx.Request.Context(), url)
	if err != nil {
		metrics.RecordDirectorySync(false)
		Error(ctx, http.StatusBadGateway, err.Error(), "")
		return
	}

	if err := c.users.ReplaceAll(users); err != nil {
		metrics.RecordDirectorySync(false)
		Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
		return
	}

	_ = c.settings.Set(model.SettingLastUserSync, time.Now().Format(time.RFC3339))
	metrics.RecordDirectorySync(true)

	SuccessMessage(ctx, fmt.Sprintf("Đồng bộ thành công %d tài khoản!", len(users)), gin.H{
		"count": len(users),
	})
}

// Status thời điểm đồng bộ gần nhất
func (c *SyncController) Status(ctx *gin.Context) {
	lastSync := c.settings.GetOrDefault(model.SettingLastUserSync, "")
	Success(ctx, gin.H{
		"lastUserSync": lastSync,
	})
}
