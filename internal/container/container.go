package container

import (
	"fmt"
	"net/http"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/database"
	"github.com/V2Tn/KimTamCatCRM/internal/metrics"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	syncbridge "github.com/V2Tn/KimTamCatCRM/internal/sync"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container bộ chứa phụ thuộc của ứng dụng
// Khởi tạo và nắm giữ cơ sở dữ liệu, kho dữ liệu, dịch vụ và cầu nối
// đồng bộ.
type Container struct {
	db       *gorm.DB
	logger   *logrus.Logger
	issuer   *auth.TokenIssuer
	notifier *syncbridge.Notifier
	ingestor *syncbridge.Ingestor

	tasks       repository.TaskRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
	settings    repository.SettingRepository

	taskService       service.TaskService
	userService       service.UserService
	departmentService service.DepartmentService
	statisticsService service.StatisticsService

	collector *metrics.Collector
}

// NewContainer tạo bộ chứa phụ thuộc theo cấu hình
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// Kết nối cơ sở dữ liệu với retry, lùi theo cấp số nhân
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.Seed(db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	tasks := repository.NewTaskRepository(db)
	users := repository.NewUserRepository(db)
	departments := repository.NewDepartmentRepository(db)
	settings := repository.NewSettingRepository(db)

	// Giá trị webhook khởi tạo từ cấu hình, chỉ ghi khi chưa có
	if cfg.Sync.ReadURL != "" {
		if current, _ := settings.Get(model.SettingReadURL); current == "" {
			_ = settings.Set(model.SettingReadURL, cfg.Sync.ReadURL)
		}
	}
	if cfg.Sync.WriteURL != "" {
		if current, _ := settings.Get(model.SettingWriteURL); current == "" {
			_ = settings.Set(model.SettingWriteURL, cfg.Sync.WriteURL)
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Webhook ghi đọc lại tại mỗi lần gửi để nhận cấu hình mới nhất
	notifier := syncbridge.NewNotifier(httpClient, logger, func() string {
		return settings.GetOrDefault(model.SettingWriteURL, "")
	})
	ingestor := syncbridge.NewIngestor(httpClient, logger)

	issuer := auth.NewTokenIssuer(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	taskService := service.NewTaskService(tasks, users, logger)
	userService := service.NewUserService(users, notifier, logger)
	departmentService := service.NewDepartmentService(departments, notifier, logger)
	statisticsService := service.NewStatisticsService(tasks, users, departments)

	collector := metrics.NewCollector(db, func() (map[string]int64, error) {
		counts, err := tasks.CountByStatus()
		if err != nil {
			return nil, err
		}
		out := make(map[string]int64, len(counts))
		for status, count := range counts {
			out[string(status)] = count
		}
		return out, nil
	}, 30*time.Second)

	return &Container{
		db:                db,
		logger:            logger,
		issuer:            issuer,
		notifier:          notifier,
		ingestor:          ingestor,
		tasks:             tasks,
		users:             users,
		departments:       departments,
		settings:          settings,
		taskService:       taskService,
		userService:       userService,
		departmentService: departmentService,
		statisticsService: statisticsService,
		collector:         collector,
	}, nil
}

// DB kết nối cơ sở dữ liệu
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Logger logger dùng chung
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// TokenIssuer bộ phát hành token phiên
func (c *Container) TokenIssuer() *auth.TokenIssuer {
	return c.issuer
}

// Notifier cầu nối thông báo thay đổi
func (c *Container) Notifier() *syncbridge.Notifier {
	return c.notifier
}

// Ingestor bộ nạp danh bạ
func (c *Container) Ingestor() *syncbridge.Ingestor {
	return c.ingestor
}

// TaskRepository kho công việc
func (c *Container) TaskRepository() repository.TaskRepository {
	return c.tasks
}

// UserRepository kho nhân sự
func (c *Container) UserRepository() repository.UserRepository {
	return c.users
}

// DepartmentRepository kho phòng ban
func (c *Container) DepartmentRepository() repository.DepartmentRepository {
	return c.departments
}

// SettingRepository kho cấu hình
func (c *Container) SettingRepository() repository.SettingRepository {
	return c.settings
}

// TaskService dịch vụ công việc
func (c *Container) TaskService() service.TaskService {
	return c.taskService
}

// UserService dịch vụ nhân sự
func (c *Container) UserService() service.UserService {
	return c.userService
}

// DepartmentService dịch vụ phòng ban
func (c *Container) DepartmentService() service.DepartmentService {
	return c.departmentService
}

// StatisticsService dịch vụ thống kê
func (c *Container) StatisticsService() service.StatisticsService {
	return c.statisticsService
}

// Collector bộ thu thập chỉ số định kỳ
func (c *Container) Collector() *metrics.Collector {
	return c.collector
}

// Close đóng bộ chứa, chờ thông báo đang gửi và trả tài nguyên
func (c *Container) Close() error {
	c.notifier.Wait()

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
