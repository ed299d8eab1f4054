package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Các lỗi đồng bộ hiển thị cho người dùng
var (
	ErrNoReadURL       = errors.New("Chưa cấu hình Webhook URL!")
	ErrLinkExpired     = errors.New("Liên kết đồng bộ đã hết hạn (HTTP 410)")
	ErrNoDataArray     = errors.New("Không tìm thấy mảng dữ liệu hợp lệ trong phản hồi API.")
	ErrNoUsableRecords = errors.New("Không thể trích xuất dữ liệu nhân sự. Vui lòng kiểm tra lại cấu trúc JSON.")
)

// Ingestor tải và chuẩn hóa danh bạ nhân sự từ webhook đọc
type Ingestor struct {
	client *http.Client
	logger *logrus.Logger
}

// NewIngestor tạo bộ nạp danh bạ
func NewIngestor(client *http.Client, logger *logrus.Logger) *Ingestor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Ingestor{client: client, logger: logger}
}

// FetchUsers tải payload danh bạ, vá định dạng và chuẩn hóa
// Bản ghi hỏng bị bỏ qua; chỉ lỗi khi tải thất bại, không tìm thấy
// mảng dữ liệu, hoặc không bản ghi nào dùng được.
func (ig *Ingestor) FetchUsers(ctx context.Context, url string) ([]*model.User, error) {
	if url == "" {
		return nil, ErrNoReadURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Lỗi kết nối máy chủ: %w", err)
	}

	resp, err := ig.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Lỗi kết nối máy chủ: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return nil, ErrLinkExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Lỗi kết nối máy chủ (HTTP %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Lỗi kết nối máy chủ: %w", err)
	}

	parsed, err := ParsePayload(string(body))
	if err != nil {
		ig.logger.WithError(err).Warn("directory payload could not be repaired")
		return nil, err
	}

	source, err := locateSourceArray(parsed)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(source))
	for _, item := range source {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		user, ok := NormalizeUser(record)
		if !ok {
			ig.logger.WithField("record", record).Warn("directory record dropped during normalization")
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 && len(source) > 0 {
		return nil, ErrNoUsableRecords
	}

	return users, nil
}

// locateSourceArray xác định mảng bản ghi trong cấu trúc đã parse
// Chấp nhận mảng trần, {status:"success",data:[...]} hoặc {data:[...]}.
func locateSourceArray(parsed interface{}) ([]interface{}, error) {
	switch v := parsed.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		if arr, ok := v["data"].([]interface{}); ok {
			return arr, nil
		}
	}
	return nil, ErrNoDataArray
}

// NormalizeUser chuyển một bản ghi thô thành hồ sơ nhân sự chuẩn
// Mọi trường đều có giá trị mặc định; bản ghi thiếu cả id lẫn tên
// bị loại bỏ (trả về false).
func NormalizeUser(item map[string]interface{}) (*model.User, bool) {
	data := item
	// Cột sheet có thể chứa JSON mã hóa hai lần trong trường "json"
	if j, present := item["json"]; present {
		switch val := j.(type) {
		case string:
			var m map[string]interface{}
			if err := json.Unmarshal([]byte(val), &m); err != nil {
				return nil, false
			}
			data = m
		case map[string]interface{}:
			data = val
		}
	}

	// Khóa số kiểu mảng: "0" là id, "2" là tên (thứ tự cột của sheet cũ)
	id := stringField(data, "id", "0")
	rawName := stringField(data, "name", "2")
	if id == "" && rawName == "" {
		return nil, false
	}

	if id == "" {
		id = uuid.NewString()
	}
	name := rawName
	if name == "" {
		name = "Thành viên mới"
	}

	username := stringField(data, "username")
	if username == "" {
		if rawName != "" {
			username = strings.ToLower(strings.ReplaceAll(rawName, " ", ""))
		} else {
			username = "user_" + id
		}
	}

	role := model.Role(stringField(data, "role"))
	if !role.Valid() {
		role = model.RoleStaff
	}

	gender := stringField(data, "gender")
	if gender == "" {
		gender = "Nam"
	}

	password := stringField(data, "password")
	if password == "" {
		password = "123456"
	}

	isOnline := model.OnlineNo
	if truthy(data["isOnline"]) {
		isOnline = model.OnlineYes
	}

	createdAt := time.Now()
	if raw := stringField(data, "createdAt"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			createdAt = parsed
		}
	}

	return &model.User{
		ID:           id,
		Name:         name,
		Username:     username,
		Email:        stringField(data, "email"),
		Role:         role,
		DepartmentID: stringField(data, "departmentId"),
		IsOnline:     isOnline,
		PhoneNumber:  stringField(data, "phoneNumber"),
		Password:     password,
		Gender:       gender,
		ImageAvatar:  stringField(data, "image_avatar"),
		CreatedAt:    createdAt,
	}, true
}

// stringField đọc trường chuỗi theo danh sách khóa ưu tiên
func stringField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := data[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// truthy đánh giá kiểu truthiness của dữ liệu sheet
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != "" && val != "0" && val != "false"
	}
	return false
}
