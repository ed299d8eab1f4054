package api

import (
	"errors"
	"net/http"

	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// Response định dạng phản hồi thống nhất
type Response struct {
	Code    int         `json:"code"`    // 0 là thành công, khác 0 là lỗi
	Message string      `json:"message"` // thông điệp phản hồi
	Data    interface{} `json:"data"`    // dữ liệu phản hồi
}

// ErrorResponse định dạng phản hồi lỗi
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Success phản hồi thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessMessage phản hồi thành công kèm thông điệp hiển thị
func SuccessMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error phản hồi lỗi
func Error(c *gin.Context, code int, message string, detail string) {
	statusCode := http.StatusInternalServerError
	if code >= 400 && code < 600 {
		statusCode = code
	}

	c.JSON(statusCode, ErrorResponse{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// ServiceError ánh xạ lỗi nghiệp vụ sang mã HTTP
func ServiceError(c *gin.Context, err error) {
	var validation *service.ValidationError
	var transition *service.IllegalTransitionError

	switch {
	case errors.As(err, &validation):
		Error(c, http.StatusBadRequest, validation.Message, "")
	case errors.As(err, &transition):
		Error(c, http.StatusConflict, "Không thể chuyển trạng thái", err.Error())
	case service.IsNotFound(err):
		Error(c, http.StatusNotFound, "Không tìm thấy dữ liệu", err.Error())
	case errors.Is(err, service.ErrForbidden):
		Error(c, http.StatusForbidden, "Bạn không có quyền thực hiện thao tác này", "")
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error(), "")
	default:
		Error(c, http.StatusInternalServerError, "Đã xảy ra lỗi hệ thống", err.Error())
	}
}
