package main

import (
	"strings"
	"testing"
	"time"
)

const sampleEvents = `{"session_id":"s1","user_id":"ana","timestamp":"2026-03-01T10:00:00Z","event":"import","source":"estoque.xlsx","extra_json":{"rows":"12","sheets":"3"}}
{"session_id":"s1","timestamp":"2026-03-01T10:01:30Z","event":"edit_commit","sheet":"CARRINHO 1","row":2}

not json
{"session_id":"s1","timestamp":"2026-03-01T10:02:00Z","event":"persist_degraded","source":"estoque.xlsx"}
{"session_id":"s2","timestamp":"2026-03-02T09:00:00Z","event":"import_failed","source":"broken.xlsx","extra_json":{"error":"no usable sheets"}}
{"session_id":"s2","timestamp":"2026-03-02T09:00:05Z","event":"clear"}
{"session_id":"s2","timestamp":"2026-03-02T09:00:09Z","event":"edit_commit","sheet":"ARMARIO"}
{"session_id":"s2","timestamp":"2026-03-02T09:00:10Z"}
`

func TestParseEventsReportsMalformedLines(t *testing.T) {
	events, malformed, err := parseEvents(strings.NewReader(sampleEvents))
	if err != nil {
		t.Fatalf("parseEvents: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if len(malformed) != 2 || malformed[0] != 4 || malformed[1] != 9 {
		t.Fatalf("unexpected malformed lines %v", malformed)
	}
	if events[1].Row == nil || *events[1].Row != 2 {
		t.Fatalf("expected row 2 on edit event, got %v", events[1].Row)
	}
}

func TestBuildReportGroupsSessions(t *testing.T) {
	events, malformed, err := parseEvents(strings.NewReader(sampleEvents))
	if err != nil {
		t.Fatalf("parseEvents: %v", err)
	}
	rep := buildReport("ui-events.ndjson", events, malformed)

	if rep.Counts["edit_commit"] != 2 || rep.Counts["import"] != 1 {
		t.Fatalf("unexpected counts %v", rep.Counts)
	}
	if rep.EditedSheets["CARRINHO 1"] != 1 || rep.EditedSheets["ARMARIO"] != 1 {
		t.Fatalf("unexpected edited sheets %v", rep.EditedSheets)
	}
	if len(rep.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(rep.Sessions))
	}
	first := rep.Sessions[0]
	if first.SessionID != "s1" || first.UserID != "ana" || first.Events != 3 {
		t.Fatalf("unexpected first session %+v", first)
	}
	if first.Duration != (2 * time.Minute).String() {
		t.Fatalf("unexpected duration %q", first.Duration)
	}
	if len(first.Anomalies) != 1 || !strings.Contains(first.Anomalies[0], "quota") {
		t.Fatalf("expected quota anomaly, got %v", first.Anomalies)
	}

	second := rep.Sessions[1]
	if len(second.Anomalies) != 2 {
		t.Fatalf("expected import failure and edit-after-clear anomalies, got %v", second.Anomalies)
	}
	if !strings.Contains(second.Anomalies[0], "no usable sheets") {
		t.Fatalf("expected failure reason, got %q", second.Anomalies[0])
	}
	if !strings.Contains(second.Anomalies[1], "after clear") {
		t.Fatalf("expected edit-after-clear anomaly, got %q", second.Anomalies[1])
	}
	last := rep.Anomalies[len(rep.Anomalies)-1]
	if last != "2 malformed lines" {
		t.Fatalf("expected malformed summary last, got %q", last)
	}
}

func TestFilterSince(t *testing.T) {
	events, _, err := parseEvents(strings.NewReader(sampleEvents))
	if err != nil {
		t.Fatalf("parseEvents: %v", err)
	}
	cutoff := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	kept := filterSince(events, cutoff)
	if len(kept) != 3 {
		t.Fatalf("expected 3 events after cutoff, got %d", len(kept))
	}
	if len(filterSince(events, time.Time{})) != len(events) {
		t.Fatal("zero cutoff should keep everything")
	}
}
