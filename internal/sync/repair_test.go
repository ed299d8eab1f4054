package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveTrailingCommas(t *testing.T) {
	in := `{"a": 1, "b": 2,}`
	assert.Equal(t, `{"a": 1, "b": 2}`, RemoveTrailingCommas(in))

	in = `[{"a": 1},{"b": 2},]`
	assert.Equal(t, `[{"a": 1},{"b": 2}]`, RemoveTrailingCommas(in))
}

func TestNormalizeDoubledBraces(t *testing.T) {
	in := `{"data": {{"id": "1"}}}`
	assert.Equal(t, `{"data": [{"id": "1"}]}`, NormalizeDoubledBraces(in))
}

func TestWrapDataArray(t *testing.T) {
	in := `{"status":"success","data": {"id":"1"},{"id":"2"}}`
	out, ok := WrapDataArray(in)
	require.True(t, ok)
	assert.Equal(t, `{"status":"success","data": [{"id":"1"},{"id":"2"}]}`, out)

	// Đã có ngoặc vuông thì giữ nguyên
	in = `{"data": [{"id":"1"}]}`
	out, ok = WrapDataArray(in)
	assert.False(t, ok)
	assert.Equal(t, in, out)

	// Không có khóa data
	_, ok = WrapDataArray(`[{"id":"1"}]`)
	assert.False(t, ok)
}

func TestParsePayloadStrict(t *testing.T) {
	v, err := ParsePayload(`[{"id":"1","name":"A"}]`)
	require.NoError(t, err)
	arr, ok := v.([]interface{})
	require.True(t, ok)
	assert.Len(t, arr, 1)
}

func TestParsePayloadTrailingCommas(t *testing.T) {
	v, err := ParsePayload(`{"data": [{"id":"1",},{"id":"2",},]}`)
	require.NoError(t, err)
	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, m["data"], 2)
}

func TestParsePayloadMissingArrayBrackets(t *testing.T) {
	raw := `{"status":"success","data": {"id":"1","name":"A"},{"id":"2","name":"B"}}`
	v, err := ParsePayload(raw)
	require.NoError(t, err)

	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	arr, ok := m["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, arr, 2)

	first, ok := arr[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1", first["id"])
}

func TestParsePayloadBareObjectSequence(t *testing.T) {
	raw := `{"id":"1","name":"A"},{"id":"2","name":"B"}`
	v, err := ParsePayload(raw)
	require.NoError(t, err)

	arr, ok := v.([]interface{})
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestParsePayloadDoubledBraces(t *testing.T) {
	raw := `{"data": {{"id":"1","name":"A"}}}`
	v, err := ParsePayload(raw)
	require.NoError(t, err)

	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	arr, ok := m["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, arr, 1)
}

func TestParsePayloadRecordIsolation(t *testing.T) {
	// Một bản ghi hỏng không kéo các bản ghi lành theo
	raw := `garbage {"id":"1","name":"A"} noise {"id": broken} {"id":"2","name":"B"} tail`
	v, err := ParsePayload(raw)
	require.NoError(t, err)

	arr, ok := v.([]interface{})
	require.True(t, ok)
	require.Len(t, arr, 2)
}

func TestParsePayloadUnrepairable(t *testing.T) {
	_, err := ParsePayload(`hoàn toàn không phải JSON`)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
