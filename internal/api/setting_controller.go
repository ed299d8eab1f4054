package api

import (
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/gin-gonic/gin"
)

// SettingController cấu hình webhook đồng bộ
type SettingController struct {
	settings repository.SettingRepository
}

// NewSettingController tạo controller cấu hình
func NewSettingController(settings repository.SettingRepository) *SettingController {
	return &SettingController{settings: settings}
}

// webhookRequest thân yêu cầu cập nhật webhook
type webhookRequest struct {
	ReadURL  *string `json:"readUrl"`
	WriteURL *string `json:"writeUrl"`
}

// GetWebhooks trả về cặp URL webhook đang dùng
func (c *SettingController) GetWebhooks(ctx *gin.Context) {
	readURL, err := c.settings.Get(model.SettingReadURL)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
		return
	}
	writeURL, err := c.settings.Get(model.SettingWriteURL)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
		return
	}

	Success(ctx, gin.H{
		"readUrl":  readURL,
		"writeUrl": writeURL,
	})
}

// UpdateWebhooks cập nhật URL webhook; chỉ trường có mặt được ghi đè
func (c *SettingController) UpdateWebhooks(ctx *gin.Context) {
	var req webhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if req.ReadURL != nil {
		if err := c.settings.Set(model.SettingReadURL, *req.ReadURL); err != nil {
			Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
			return
		}
	}
	if req.WriteURL != nil {
		if err := c.settings.Set(model.SettingWriteURL, *req.WriteURL); err != nil {
			Error(ctx, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
			return
		}
	}

	SuccessMessage(ctx, "Đã lưu cấu hình Webhook!", nil)
}
