package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event names written to the telemetry file.
const (
	eventImport          = "import"
	eventImportFailed    = "import_failed"
	eventPersistDegraded = "persist_degraded"
	eventEditCommit      = "edit_commit"
	eventClear           = "clear"
	eventThemeToggle     = "theme_toggle"
	eventSearch          = "search"
	eventCopyRow         = "copy_row"
)

type telemetryEvent struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Source    string            `json:"source,omitempty"`
	Sheet     string            `json:"sheet,omitempty"`
	Row       *int              `json:"row,omitempty"`
	ExtraJSON map[string]string `json:"extra_json,omitempty"`
}

type telemetryLogger struct {
	path      string
	sessionID string
	userID    string
	mu        sync.Mutex
}

func newTelemetryLogger(path, sessionID, userID string) *telemetryLogger {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("[telemetry] %v", err)
	}
	return &telemetryLogger{
		path:      path,
		sessionID: strings.TrimSpace(sessionID),
		userID:    strings.TrimSpace(userID),
	}
}

// Emit appends one JSON line to the telemetry file. Failures are logged and
// never reach the caller.
func (t *telemetryLogger) Emit(event telemetryEvent) {
	if t == nil || strings.TrimSpace(event.Event) == "" {
		return
	}
	t.stamp(&event)
	line, err := json.Marshal(event)
	if err != nil {
		log.Printf("[telemetry] encode %s: %v", event.Event, err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := appendLine(t.path, line); err != nil {
		log.Printf("[telemetry] write %s: %v", event.Event, err)
	}
}

func (t *telemetryLogger) stamp(event *telemetryEvent) {
	if event.SessionID == "" {
		event.SessionID = t.sessionID
	}
	if event.UserID = strings.TrimSpace(event.UserID); event.UserID == "" {
		event.UserID = t.userID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if len(event.ExtraJSON) == 0 {
		event.ExtraJSON = nil
	}
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EmitRow records an event tied to one row.
func (t *telemetryLogger) EmitRow(name, sheet string, index int, extra map[string]string) {
	row := index
	t.Emit(telemetryEvent{Event: name, Sheet: sheet, Row: &row, ExtraJSON: extra})
}

func newTelemetrySessionID() string {
	return uuid.NewString()
}

func resolveTelemetryUserID() string {
	candidates := []string{
		os.Getenv("INVENTARIO_USER_ID"),
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
	}
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
