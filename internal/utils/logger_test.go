package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) Logger {
	return newLogger(buf, "production")
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	t.Run("production is json without debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, "production")
		logger.Debug("hidden")
		assert.Zero(t, buf.Len())

		logger.Info("shown", "k", "v")
		entry := lastEntry(t, &buf)
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("development is text with debug", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, "development").Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})
}

func TestLogRequestLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			jsonLogger(&buf).LogRequest("GET", "/x", tt.status, "1ms")
			entry := lastEntry(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.EqualValues(t, tt.status, entry["status_code"])
		})
	}
}

func TestWithAndLogError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf).With("component", "test").LogError(assert.AnError, "failed", "id", 3)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.EqualValues(t, 3, entry["id"])
}

func TestToSlogLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, base, ToSlogLogger(NewSlogLogger(base)))
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-1")
		c.Next()
	})
	router.Use(LoggerMiddleware(jsonLogger(&buf)))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "HTTP Request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.Equal(t, "req-1", entry["request_id"])
	_, hasUser := entry["user_id"]
	assert.False(t, hasUser)
}
