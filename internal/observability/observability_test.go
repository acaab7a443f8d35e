package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"store-dashboard/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggerConfig{Level: "info", Format: "json"}, &buf)
	logger.Debug("hidden")
	logger.Info("dataset loaded", "rows", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "dataset loaded" {
		t.Errorf("msg = %v", entry["msg"])
	}

	buf.Reset()
	logger = NewLogger(config.LoggerConfig{Level: "debug", Format: "text"}, &buf)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if GetRequestID(ctx) != "abc" {
		t.Error("request id not stored in context")
	}
	if GetRequestID(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}

func TestStartSpan_Nesting(t *testing.T) {
	ctx, parent := StartSpan(context.Background(), "GET /api/report")
	_, child := StartSpan(ctx, "pipeline")

	if child.TraceID != parent.TraceID {
		t.Error("child span should inherit the trace id")
	}
	if child.ParentID != parent.SpanID {
		t.Error("child span should reference its parent")
	}

	child.SetError(errors.New("boom"))
	child.Finish()
	if child.Status != SpanStatusError || child.Error != "boom" {
		t.Errorf("unexpected child span: %+v", child)
	}

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("done", child.Attrs())
	if !strings.Contains(buf.String(), "span.operation=pipeline") {
		t.Errorf("span attrs missing from log line: %q", buf.String())
	}
}
