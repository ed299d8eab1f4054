package sync

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPayload payload không thể vá về JSON hợp lệ
var ErrInvalidPayload = errors.New("Định dạng dữ liệu từ Make.com không hợp lệ. Vui lòng kiểm tra lại cấu trúc Webhook (Data phải là một Array).")

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	recordRe        = regexp.MustCompile(`\{[^{}]*\}`)
)

// RemoveTrailingCommas bỏ dấu phẩy thừa trước ngoặc đóng
func RemoveTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// NormalizeDoubledBraces chuyển ngoặc nhọn đôi (cách Make đánh dấu mảng lỗi)
// về ngoặc vuông chuẩn
func NormalizeDoubledBraces(s string) string {
	s = strings.ReplaceAll(s, "{{", "[{")
	s = strings.ReplaceAll(s, "}}", "}]")
	return s
}

// WrapDataArray bọc ngoặc vuông quanh dãy object sau khóa "data":
// Tìm '{' đầu tiên sau "data": và '}' cuối cùng của chuỗi (đóng root),
// phần ở giữa chính là dãy bản ghi bị thiếu ngoặc vuông.
func WrapDataArray(s string) (string, bool) {
	const dataKey = `"data":`
	keyIdx := strings.Index(s, dataKey)
	if keyIdx == -1 {
		return s, false
	}

	start := strings.Index(s[keyIdx:], "{")
	if start == -1 {
		return s, false
	}
	start += keyIdx

	end := strings.LastIndex(s, "}")
	if end <= start {
		return s, false
	}

	content := strings.TrimSpace(s[start:end])
	if strings.HasPrefix(content, "[") {
		return s, false
	}

	return s[:start] + "[" + content + "]" + s[end:], true
}

// ExtractRecords quét các đoạn {...} trong văn bản thô
func ExtractRecords(s string) []string {
	return recordRe.FindAllString(s, -1)
}

// ParsePayload parse payload danh bạ có thể sai định dạng
// Thứ tự: parse chuẩn → các bước vá văn bản xác định → trích từng bản ghi.
// Một bản ghi hỏng không làm hỏng các bản ghi còn lại.
func ParsePayload(raw string) (interface{}, error) {
	text := strings.TrimSpace(raw)

	var v interface{}
	if json.Unmarshal([]byte(text), &v) == nil {
		return v, nil
	}

	repaired := RemoveTrailingCommas(text)
	if json.Unmarshal([]byte(repaired), &v) == nil {
		return v, nil
	}

	if strings.Contains(repaired, `"data":`) {
		if fixed, ok := WrapDataArray(repaired); ok {
			if json.Unmarshal([]byte(fixed), &v) == nil {
				return v, nil
			}
		}
	} else {
		// Không có khóa "data": thử coi toàn bộ chuỗi là dãy object thô
		if json.Unmarshal([]byte("["+repaired+"]"), &v) == nil {
			return v, nil
		}
	}

	if doubled := NormalizeDoubledBraces(repaired); doubled != repaired {
		if json.Unmarshal([]byte(doubled), &v) == nil {
			return v, nil
		}
	}

	// Nước cuối: trích từng bản ghi, vá và parse độc lập,
	// chấp nhận phần parse được
	records := ExtractRecords(repaired)
	out := make([]interface{}, 0, len(records))
	for _, rec := range records {
		var m map[string]interface{}
		if json.Unmarshal([]byte(RemoveTrailingCommas(rec)), &m) == nil {
			out = append(out, m)
		}
	}
	if len(out) > 0 {
		return out, nil
	}

	return nil, ErrInvalidPayload
}
