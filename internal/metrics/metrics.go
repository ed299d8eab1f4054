package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// Đếm request API
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// Thời gian phản hồi API
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Số công việc được tạo
	tasksCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_created_total",
			Help: "Total number of tasks created",
		},
	)

	// Phân bố công việc theo trạng thái
	tasksByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tasks_by_status",
			Help: "Number of tasks by status",
		},
		[]string{"status"},
	)

	// Kết quả các lần đồng bộ danh bạ
	directorySyncsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_syncs_total",
			Help: "Total number of directory sync attempts",
		},
		[]string{"outcome"}, // success, failure
	)

	// Kết quả gửi thông báo thay đổi ra webhook ghi
	changeNotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_notifications_total",
			Help: "Total number of outbound change notifications",
		},
		[]string{"action", "outcome"},
	)

	// Kết nối cơ sở dữ liệu
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(tasksCreatedTotal)
	prometheus.MustRegister(tasksByStatus)
	prometheus.MustRegister(directorySyncsTotal)
	prometheus.MustRegister(changeNotificationsTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)

	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler trả về handler cho endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest ghi nhận một request API
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordTaskCreated ghi nhận một công việc mới
func RecordTaskCreated() {
	tasksCreatedTotal.Inc()
}

// UpdateTasksByStatus cập nhật phân bố công việc theo trạng thái
func UpdateTasksByStatus(status string, count float64) {
	tasksByStatus.WithLabelValues(status).Set(count)
}

// RecordDirectorySync ghi nhận một lần đồng bộ danh bạ
func RecordDirectorySync(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	directorySyncsTotal.WithLabelValues(outcome).Inc()
}

// RecordChangeNotification ghi nhận một lần gửi thông báo thay đổi
func RecordChangeNotification(action string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	changeNotificationsTotal.WithLabelValues(action, outcome).Inc()
}

// UpdateDatabaseConnections cập nhật chỉ số kết nối cơ sở dữ liệu
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	return nil
}
