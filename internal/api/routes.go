package api

import (
	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Controllers tập hợp controller của ứng dụng
type Controllers struct {
	Health     *HealthController
	Auth       *AuthController
	Task       *TaskController
	User       *UserController
	Department *DepartmentController
	Sync       *SyncController
	Setting    *SettingController
	Statistics *StatisticsController
}

// SetupRoutes cấu hình router
func SetupRoutes(cfg *config.Config, logger *logrus.Logger, issuer *auth.TokenIssuer, users repository.UserRepository, c *Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware chung
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(logger))
	router.Use(CORSMiddleware(&cfg.CORS))
	router.Use(RateLimitMiddleware(100, 200))

	// Kiểm tra sức khỏe
	router.GET("/health", c.Health.Check)

	// Chỉ số Prometheus
	router.GET("/metrics", MetricsHandler)

	// Nhóm API v1
	v1 := router.Group("/api/v1")

	// Đăng nhập không cần token
	v1.POST("/auth/login", c.Auth.Login)
	v1.GET("/auth/remembered", c.Auth.RememberedLogins)

	// Các route còn lại yêu cầu phiên hợp lệ
	authed := v1.Group("")
	authed.Use(auth.Middleware(issuer, users))
	{
		authed.POST("/auth/logout", c.Auth.Logout)

		// Công việc
		tasks := authed.Group("/tasks")
		{
			tasks.GET("", c.Task.List)
			tasks.POST("", c.Task.Create)
			tasks.GET("/stats", c.Task.Stats)
			tasks.GET("/:id", c.Task.Get)
			tasks.PUT("/:id", c.Task.Update)
			tasks.POST("/:id/done", c.Task.MarkDone)
			tasks.DELETE("/:id", c.Task.Delete)
		}

		// Nhân sự
		users := authed.Group("/users")
		{
			users.GET("", c.User.List)
			users.GET("/:id", c.User.Get)
			users.POST("", auth.RequireModerator(), c.User.Create)
			users.PUT("/:id", auth.RequireModerator(), c.User.Update)
			users.DELETE("/:id", auth.RequireModerator(), c.User.Delete)
			users.POST("/sync", auth.RequireModerator(), c.Sync.Run)
			users.GET("/sync/status", c.Sync.Status)
		}

		// Phòng ban
		departments := authed.Group("/departments")
		{
			departments.GET("", c.Department.List)
			departments.POST("", auth.RequireModerator(), c.Department.Create)
			departments.PUT("/:id", auth.RequireModerator(), c.Department.Update)
			departments.DELETE("/:id", auth.RequireModerator(), c.Department.Delete)
		}

		// Cấu hình webhook
		settings := authed.Group("/settings")
		settings.Use(auth.RequireModerator())
		{
			settings.GET("/webhooks", c.Setting.GetWebhooks)
			settings.PUT("/webhooks", c.Setting.UpdateWebhooks)
		}

		// Thống kê hiệu suất
		authed.GET("/statistics/departments", c.Statistics.Departments)
	}

	return router
}
