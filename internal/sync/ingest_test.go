package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestor() *Ingestor {
	logger := logrus.New()
	return NewIngestor(nil, logger)
}

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchUsersNoURL(t *testing.T) {
	ig := newTestIngestor()
	_, err := ig.FetchUsers(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoReadURL)
}

func TestFetchUsersLinkExpired(t *testing.T) {
	ig := newTestIngestor()
	server := serveBody(t, http.StatusGone, "")

	_, err := ig.FetchUsers(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestFetchUsersServerError(t *testing.T) {
	ig := newTestIngestor()
	server := serveBody(t, http.StatusInternalServerError, "")

	_, err := ig.FetchUsers(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lỗi kết nối máy chủ (HTTP 500)")
}

func TestFetchUsersMissingBrackets(t *testing.T) {
	// Payload thiếu ngoặc vuông quanh mảng data, kiểu lỗi thường gặp từ Make
	body := `{"status":"success","data": {"id":"1","name":"Nguyễn Văn A"},{"id":"2","name":"Trần Thị B"}}`
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, body)

	users, err := ig.FetchUsers(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "Nguyễn Văn A", users[0].Name)
	assert.Equal(t, model.RoleStaff, users[0].Role)
	assert.Equal(t, "Nam", users[0].Gender)
	assert.Equal(t, "2", users[1].ID)
	assert.Equal(t, "Trần Thị B", users[1].Name)
}

func TestFetchUsersBareArray(t *testing.T) {
	body := `[{"id":"1","name":"A","role":"MANAGER","username":"quanly"}]`
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, body)

	users, err := ig.FetchUsers(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleManager, users[0].Role)
	assert.Equal(t, "quanly", users[0].Username)
}

func TestFetchUsersRecordIsolation(t *testing.T) {
	// 9 bản ghi hỏng không làm mất bản ghi lành duy nhất
	body := `junk {"id": x} {"id": x} {"id": x} {"id": x} {"id": x}` +
		` {"id": x} {"id": x} {"id": x} {"id": x} {"id":"10","name":"Sống sót"}`
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, body)

	users, err := ig.FetchUsers(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Sống sót", users[0].Name)
}

func TestFetchUsersNoDataArray(t *testing.T) {
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, `{"status":"success","result": 42}`)

	_, err := ig.FetchUsers(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrNoDataArray)
}

func TestFetchUsersNoUsableRecords(t *testing.T) {
	// Mảng có phần tử nhưng không bản ghi nào có id hoặc tên
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, `[{"email":"x@y.z"},{"phoneNumber":"0901234567"}]`)

	_, err := ig.FetchUsers(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrNoUsableRecords)
}

func TestFetchUsersEmptyArray(t *testing.T) {
	ig := newTestIngestor()
	server := serveBody(t, http.StatusOK, `[]`)

	users, err := ig.FetchUsers(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNormalizeUserDefaults(t *testing.T) {
	user, ok := NormalizeUser(map[string]interface{}{"name": "Lê Văn C"})
	require.True(t, ok)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Lê Văn C", user.Name)
	assert.Equal(t, "lêvănc", user.Username)
	assert.Equal(t, model.RoleStaff, user.Role)
	assert.Equal(t, "123456", user.Password)
	assert.Equal(t, "Nam", user.Gender)
	assert.Equal(t, model.OnlineNo, user.IsOnline)
}

func TestNormalizeUserIDOnly(t *testing.T) {
	user, ok := NormalizeUser(map[string]interface{}{"id": "u-7"})
	require.True(t, ok)

	assert.Equal(t, "u-7", user.ID)
	assert.Equal(t, "Thành viên mới", user.Name)
	assert.Equal(t, "user_u-7", user.Username)
}

func TestNormalizeUserPositionalKeys(t *testing.T) {
	// Cột sheet kiểu mảng: "0" là id, "2" là tên
	user, ok := NormalizeUser(map[string]interface{}{
		"0": float64(15),
		"2": "Phạm Thị D",
	})
	require.True(t, ok)

	assert.Equal(t, "15", user.ID)
	assert.Equal(t, "Phạm Thị D", user.Name)
}

func TestNormalizeUserNestedJSON(t *testing.T) {
	user, ok := NormalizeUser(map[string]interface{}{
		"json": `{"id":"u-9","name":"Người lồng","role":"ADMIN","isOnline":true}`,
	})
	require.True(t, ok)

	assert.Equal(t, "u-9", user.ID)
	assert.Equal(t, "Người lồng", user.Name)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, model.OnlineYes, user.IsOnline)
}

func TestNormalizeUserRejected(t *testing.T) {
	_, ok := NormalizeUser(map[string]interface{}{"email": "a@b.c"})
	assert.False(t, ok)

	_, ok = NormalizeUser(map[string]interface{}{"json": "not json at all"})
	assert.False(t, ok)
}

func TestNormalizeUserInvalidRoleFallsBack(t *testing.T) {
	user, ok := NormalizeUser(map[string]interface{}{"id": "1", "name": "A", "role": "BOSS"})
	require.True(t, ok)
	assert.Equal(t, model.RoleStaff, user.Role)
}
