package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"log/slog"
)

func newTestLogger(t *testing.T, format logFormat) (*bytes.Buffer, *asyncWriter, *slog.Logger) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return buf, aw, slog.New(handler)
}

func drainLine(t *testing.T, buf *bytes.Buffer, aw *asyncWriter) string {
	t.Helper()
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	return line
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf, aw, log := newTestLogger(t, formatKV)
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "app"), slog.LevelInfo, "test.event",
		slog.String("status", "ok"),
		slog.String("cause", "unit"),
	)

	line := drainLine(t, buf, aw)
	tokens := strings.Split(line, " ")
	if len(tokens) < 6 {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	expected := []string{"ts=", "level=INFO", "component=app", "event=test.event", "status=ok", "rid=rid-123"}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	buf, aw, log := newTestLogger(t, formatJSON)
	ctx := WithRID(Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)

	LogEvent(ctx, log.With("component", "service.test"), slog.LevelError, "service.failed",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
		slog.String("err_code", "TEST_FAIL"),
	)

	line := drainLine(t, buf, aw)
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %s", line)
	}
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.test"`, `"event":"service.failed"`, `"status":"fail"`, `"rid":"rid-json"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	buf, aw, log := newTestLogger(t, formatKV)
	rawRID := "123:456:789"
	ctx := WithRID(Background(), rawRID)

	LogEvent(ctx, log.With("component", "app"), slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)

	line := drainLine(t, buf, aw)
	if !strings.Contains(line, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", line)
	}
}

func TestStructuredHandlerCompactRIDJSON(t *testing.T) {
	buf, aw, log := newTestLogger(t, formatJSON)
	rawRID := "12:34:56"
	ctx := WithRID(Background(), rawRID)

	LogEvent(ctx, log.With("component", "app"), slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)

	line := drainLine(t, buf, aw)
	if !strings.Contains(line, `"rid":"`+CompactRID(rawRID)+`"`) {
		t.Fatalf("expected compact rid in JSON, got %s", line)
	}
	if !strings.Contains(line, `"rid_full":"`+rawRID+`"`) {
		t.Fatalf("expected rid_full in JSON output, got %s", line)
	}
	if !strings.Contains(line, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano to be present in JSON output, got %s", line)
	}
}

func TestStructuredHandlerDurationKeys(t *testing.T) {
	buf, aw, log := newTestLogger(t, formatKV)

	LogEvent(Background(), log.With("component", "app"), slog.LevelInfo, "timing.test",
		slog.String("status", "ok"),
		slog.Duration("duration", 1500*time.Microsecond),
		slog.Duration("db_duration", 3*time.Millisecond),
		slog.Int64("queue_ms", 7),
	)

	line := drainLine(t, buf, aw)
	for _, want := range []string{"duration_ms=2", "db_duration_ms=3", "queue_ms=7"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
	if strings.Contains(line, "duration=") && !strings.Contains(line, "duration_ms=") {
		t.Fatalf("raw duration key leaked into %s", line)
	}
}
