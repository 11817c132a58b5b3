package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTelemetryEmitAppendsStampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "telemetry.jsonl")
	tl := newTelemetryLogger(path, "sess-1", " ana ")
	tl.Emit(telemetryEvent{Event: eventImport, Source: "estoque.xlsx", ExtraJSON: map[string]string{}})
	tl.EmitRow(eventEditCommit, "ESTOQUE", 2, map[string]string{"fields": "Qtd"})
	tl.Emit(telemetryEvent{Event: "  "})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read telemetry: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(lines), data)
	}
	var first, second telemetryEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.SessionID != "sess-1" || first.UserID != "ana" || first.Timestamp.IsZero() {
		t.Fatalf("event not stamped: %+v", first)
	}
	if strings.Contains(lines[0], "extra_json") {
		t.Fatalf("empty extras should be omitted: %s", lines[0])
	}
	if second.Row == nil || *second.Row != 2 || second.ExtraJSON["fields"] != "Qtd" {
		t.Fatalf("row event lost its payload: %+v", second)
	}
}

func TestTelemetryEmitLogsWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	dir := t.TempDir()
	tl := newTelemetryLogger(dir, "sess-1", "")
	tl.Emit(telemetryEvent{Event: eventClear})
	if !strings.Contains(buf.String(), "[telemetry] write clear") {
		t.Fatalf("write failure not logged: %q", buf.String())
	}
}
