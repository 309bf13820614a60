package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithGymID(ctx, "gym-7")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "gym-7", entry["gym_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestHTTPLog_LevelByStatus(t *testing.T) {
	cases := map[int]string{200: "INFO", 404: "WARN", 503: "ERROR"}

	for status, level := range cases {
		var buf bytes.Buffer
		InitWithWriter("production", &buf)

		HTTPLog("r", "GET", "/api/members", status, time.Millisecond, 10)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, level, entry["level"], "status %d", status)
	}
	Init("development")
}
