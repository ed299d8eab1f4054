package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/auth"
	"github.com/V2Tn/KimTamCatCRM/internal/config"
	"github.com/V2Tn/KimTamCatCRM/internal/database"
	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/V2Tn/KimTamCatCRM/internal/repository"
	"github.com/V2Tn/KimTamCatCRM/internal/service"
	syncbridge "github.com/V2Tn/KimTamCatCRM/internal/sync"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	issuer   *auth.TokenIssuer
	settings repository.SettingRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	log := logrus.New()
	tasks := repository.NewTaskRepository(db)
	users := repository.NewUserRepository(db)
	departments := repository.NewDepartmentRepository(db)
	settings := repository.NewSettingRepository(db)

	notifier := syncbridge.NewNotifier(nil, log, func() string {
		return settings.GetOrDefault(model.SettingWriteURL, "")
	})
	ingestor := syncbridge.NewIngestor(nil, log)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	taskService := service.NewTaskService(tasks, users, log)
	userService := service.NewUserService(users, notifier, log)
	departmentService := service.NewDepartmentService(departments, notifier, log)
	statisticsService := service.NewStatisticsService(tasks, users, departments)

	controllers := &Controllers{
		Health:     NewHealthController(db, settings),
		Auth:       NewAuthController(userService, issuer, settings),
		Task:       NewTaskController(taskService),
		User:       NewUserController(userService),
		Department: NewDepartmentController(departmentService),
		Sync:       NewSyncController(ingestor, userService, settings),
		Setting:    NewSettingController(settings),
		Statistics: NewStatisticsController(statisticsService),
	}

	cfg := config.Default()
	router := SetupRoutes(cfg, log, issuer, users, controllers)
	return &testEnv{router: router, db: db, issuer: issuer, settings: settings}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_requests_total")
}

func TestLoginFlow(t *testing.T) {
	env := setupTestEnv(t)

	// Tài khoản quản trị mặc định
	token := env.login(t, "admin", "admin")

	w := env.request(t, http.MethodGet, "/api/v1/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Sai mật khẩu
	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "sai",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Tên đăng nhập hoặc mật khẩu không đúng")
}

func TestMissingTokenRejected(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// Giữ nguyên ID client gửi lên
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-giu-nguyen")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "req-giu-nguyen", rec.Header().Get("X-Request-ID"))
}

func TestTaskCRUDOverHTTP(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, "admin", "admin")

	// Tạo công việc tự nhận
	w := env.request(t, http.MethodPost, "/api/v1/tasks", token, gin.H{
		"title":    "Việc qua API",
		"quadrant": "Q2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var createResp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	require.Len(t, createResp.Data, 1)
	taskID := createResp.Data[0].ID

	// Đóng khi chưa hoàn thành trả 409
	w = env.request(t, http.MethodPut, "/api/v1/tasks/"+taskID, token, gin.H{
		"status": "CLOSED",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Đánh dấu hoàn thành nhanh
	w = env.request(t, http.MethodPost, "/api/v1/tasks/"+taskID+"/done", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"DONE"`)

	// Thống kê cá nhân
	w = env.request(t, http.MethodGet, "/api/v1/tasks/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"done":1`)

	// Sau khi HOÀN THÀNH mới được đóng
	w = env.request(t, http.MethodPut, "/api/v1/tasks/"+taskID, token, gin.H{
		"status": "CLOSED",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Xóa
	w = env.request(t, http.MethodDelete, "/api/v1/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserManagementRequiresModerator(t *testing.T) {
	env := setupTestEnv(t)
	adminToken := env.login(t, "admin", "admin")

	// Admin tạo một STAFF
	w := env.request(t, http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"name":     "Nhân viên API",
		"username": "staffapi",
		"password": "123456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	staffToken := env.login(t, "staffapi", "123456")

	// STAFF không được tạo người dùng
	w = env.request(t, http.MethodPost, "/api/v1/users", staffToken, gin.H{
		"name":     "Lậu",
		"username": "lau",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nhưng vẫn xem được danh bạ
	w = env.request(t, http.MethodGet, "/api/v1/users", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookSettingsRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, "admin", "admin")

	w := env.request(t, http.MethodPut, "/api/v1/settings/webhooks", token, gin.H{
		"readUrl": "https://hook.make.com/read",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Đã lưu cấu hình Webhook!")

	w = env.request(t, http.MethodGet, "/api/v1/settings/webhooks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://hook.make.com/read")
}

func TestSyncWithoutURLFails(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, "admin", "admin")

	w := env.request(t, http.MethodPost, "/api/v1/users/sync", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Chưa cấu hình Webhook URL!")
}

func TestSyncReplacesDirectory(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, "admin", "admin")

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id":"1","name":"Hệ thống","username":"admin","password":"admin","role":"SUPER_ADMIN"},{"id":"2","name":"Đồng bộ","username":"dongbo"}]}`))
	}))
	defer upstream.Close()

	require.NoError(t, env.settings.Set(model.SettingReadURL, upstream.URL))

	w := env.request(t, http.MethodPost, "/api/v1/users/sync", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Đồng bộ thành công 2 tài khoản!")

	// Mốc đồng bộ được ghi nhận
	w = env.request(t, http.MethodGet, "/api/v1/users/sync/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"lastUserSync":""`)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestStatisticsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	token := env.login(t, "admin", "admin")

	w := env.request(t, http.MethodGet, "/api/v1/statistics/departments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kinh doanh")
}

func TestNotFoundReturnsJSON(t *testing.T) {
	env := setupTestEnv(t)
	env.router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", "")
	})

	w := env.request(t, http.MethodGet, "/khong-ton-tai", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}
