package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	bderror "github.com/msto63/boundary/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	}), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return data
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be logged, got %q", buf.String())
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.WithField("boundary", "episodes").
		WithCorrelationID("abc").
		Error("render fault", Field("attempt", 2))

	data := decodeLine(t, buf)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"level", "error"},
		{"message", "render fault"},
		{"logger", "test"},
		{"boundary", "episodes"},
		{"correlation_id", "abc"},
		{"attempt", float64(2)},
	}
	for _, tt := range tests {
		if data[tt.key] != tt.expected {
			t.Errorf("%s = %v, want %v", tt.key, data[tt.key], tt.expected)
		}
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatJSON)
	_ = parent.WithField("child", true)

	parent.Info("parent")
	data := decodeLine(t, buf)
	if _, ok := data["child"]; ok {
		t.Error("WithField leaked into parent logger")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)
	logger.WithField("b", 2).Info("hello", Field("a", 1))

	line := buf.String()
	if !strings.Contains(line, "[INF] {test} hello [a=1 b=2]") {
		t.Errorf("unexpected text line %q", line)
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"plain", errors.New("plain"), "error"},
		{"low", bderror.New("bad").WithCode(bderror.CodeInvalidInput), "info"},
		{"medium", bderror.New("down").WithCode(bderror.CodeReportFailed), "warn"},
		{"high", bderror.New("fault").WithCode(bderror.CodeRenderFault), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			data := decodeLine(t, buf)
			if data["level"] != tt.expected {
				t.Errorf("level = %v, want %v", data["level"], tt.expected)
			}
		})
	}
}

func TestLogger_LogErrorNil(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard logger should not enable any level")
	}
	logger.Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
