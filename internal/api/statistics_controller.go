package api

import (
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	"github.com/gin-gonic/gin"
)

// StatisticsController thống kê hiệu suất
type StatisticsController struct {
	statistics service.StatisticsService
}

// NewStatisticsController tạo controller thống kê
func NewStatisticsController(statistics service.StatisticsService) *StatisticsController {
	return &StatisticsController{statistics: statistics}
}

// Departments kết quả hoàn thành theo phòng ban kèm chi tiết thành viên
func (c *StatisticsController) Departments(ctx *gin.Context) {
	stats, err := c.statistics.DepartmentStats()
	if err != nil {
		ServiceError(ctx, err)
		return
	}

	Success(ctx, stats)
}
