package api

import (
	"github.com/V2Tn/KimTamCatCRM/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsHandler phục vụ chỉ số Prometheus
func MetricsHandler(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
