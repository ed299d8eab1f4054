package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/V2Tn/KimTamCatCRM/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Action loại thay đổi danh bạ gửi ra webhook ghi
type Action string

const (
	ActionCreateUser Action = "CREATE_USER"
	ActionUpdateUser Action = "UPDATE_USER"
	ActionDeleteUser Action = "DELETE_USER"
	ActionCreateDept Action = "CREATE_DEPT"
	ActionUpdateDept Action = "UPDATE_DEPT"
	ActionDeleteDept Action = "DELETE_DEPT"
)

// changeEvent thân POST gửi ra webhook ghi
type changeEvent struct {
	Timestamp string      `json:"timestamp"`
	Action    Action      `json:"action"`
	Payload   interface{} `json:"payload"`
}

// Notifier đẩy thông báo thay đổi danh bạ, best effort
// Thất bại chỉ ghi log, không bao giờ chặn hay hoàn tác thao tác cục bộ.
// Không retry, không hàng đợi, không xác nhận giao nhận.
type Notifier struct {
	client *http.Client
	logger *logrus.Logger
	url    func() string
	wg     sync.WaitGroup
}

// NewNotifier tạo bộ thông báo; url đọc webhook ghi tại thời điểm gửi
func NewNotifier(client *http.Client, logger *logrus.Logger, url func() string) *Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &Notifier{client: client, logger: logger, url: url}
}

// Notify gửi thông báo kiểu fire-and-forget
func (n *Notifier) Notify(action Action, payload interface{}) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(action, payload); err != nil {
			metrics.RecordChangeNotification(string(action), false)
			n.logger.WithError(err).WithField("action", string(action)).
				Warn("change notification failed")
			return
		}
		metrics.RecordChangeNotification(string(action), true)
	}()
}

// send thực hiện POST đồng bộ; tách riêng để kiểm thử
func (n *Notifier) send(action Action, payload interface{}) error {
	url := n.url()
	if url == "" {
		return nil
	}

	body, err := json.Marshal(changeEvent{
		Timestamp: time.Now().Format(time.RFC3339),
		Action:    action,
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post change event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("change event rejected: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Wait chờ các thông báo đang gửi xong (dùng trong kiểm thử và shutdown)
func (n *Notifier) Wait() {
	n.wg.Wait()
}
