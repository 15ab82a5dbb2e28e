package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)
	fn()
	return buf.String()
}

func TestLoggerText(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info",
			level:    "info",
			logFn:    func() { Info("planning package") },
			contains: []string{"planning package", "level=INFO"},
		},
		{
			name:     "debug hidden at info",
			level:    "info",
			logFn:    func() { Debug("skipping unreadable directory") },
			excludes: []string{"skipping unreadable directory"},
		},
		{
			name:     "debug shown at debug",
			level:    "debug",
			logFn:    func() { Debugf("scan depth %d", 5) },
			contains: []string{"scan depth 5", "level=DEBUG"},
		},
		{
			name:     "warn with fields",
			level:    "warn",
			logFn:    func() { Warn("post-install hook failed", Fields{"title_id": "CUSA00001", "files": 3}) },
			contains: []string{"post-install hook failed", "level=WARN", "title_id=CUSA00001", "files=3"},
		},
		{
			name:     "info hidden at error",
			level:    "error",
			logFn:    func() { Infof("installed %s", "CUSA00001") },
			excludes: []string{"installed CUSA00001"},
		},
		{
			name:     "success",
			level:    "info",
			logFn:    func() { Success("installation finished") },
			contains: []string{"installation finished", "status=success"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestLoggerJSON(t *testing.T) {
	out := captureOutput(t, "info", FormatJSON, func() {
		Info("plan ready", Fields{"action": "install-new", "depth": 5, "separate": true})
	})

	assert.Contains(t, out, `"msg":"plan ready"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"action":"install-new"`)
	assert.Contains(t, out, `"depth":5`)
	assert.Contains(t, out, `"separate":true`)
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		assert.NotNil(t, GetLogger())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"b": 1, "a": "x"}, Fields{"b": 2})
	assert.Equal(t, []interface{}{"a", "x", "b", 2}, attrs)
}
