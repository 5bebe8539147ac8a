package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func decodeLines(t *testing.T, b []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLoggerFiltersBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelInfo)
	l.Debug("hidden", nil)
	l.Info("nav.select_topic", map[string]any{"topic_id": "algebra"})
	l.Error("store.record", map[string]any{"error": errors.New("boom")})

	lines := decodeLines(t, buf.Bytes())
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}
	if lines[0]["msg"] != "nav.select_topic" || lines[0]["topic_id"] != "algebra" || lines[0]["level"] != "info" {
		t.Fatalf("unexpected entry %v", lines[0])
	}
	if lines[1]["error"] != "boom" {
		t.Fatalf("expected error text, got %v", lines[1]["error"])
	}
}

func TestWithStampsFieldsOnChildOnly(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf, LevelDebug)
	child := root.With(map[string]any{"session_id": "abc"})
	child.Info("app.start", nil)
	root.Info("plain", nil)

	lines := decodeLines(t, buf.Bytes())
	if lines[0]["session_id"] != "abc" {
		t.Fatalf("expected session id on child entry, got %v", lines[0])
	}
	if _, ok := lines[1]["session_id"]; ok {
		t.Fatalf("parent logger gained child fields")
	}
}

func TestFileLoggerWritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	l, err := NewJSONLogger(path, LevelDebug)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info("app.start", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(decodeLines(t, b)) != 1 {
		t.Fatalf("expected one entry, got %q", b)
	}
}

func TestParseLevel(t *testing.T) {
	if lv, err := ParseLevel("DEBUG"); err != nil || lv != LevelDebug {
		t.Fatalf("unexpected %v %v", lv, err)
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Fatalf("expected unknown level error")
	}
	var nilLogger *JSONLogger
	nilLogger.Info("ignored", nil)
}
