// Command eventsummary aggregates the inventario telemetry file
// (ui-events.ndjson) into a JSON report.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type event struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Source    string            `json:"source"`
	Sheet     string            `json:"sheet"`
	Row       *int              `json:"row"`
	ExtraJSON map[string]string `json:"extra_json"`
	line      int
}

type sessionSummary struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Duration  string         `json:"duration"`
	Events    int            `json:"events"`
	Counts    map[string]int `json:"counts"`
	Sources   []string       `json:"sources,omitempty"`
	Anomalies []string       `json:"anomalies,omitempty"`
}

type report struct {
	Source         string           `json:"source"`
	Events         int              `json:"events"`
	MalformedLines []int            `json:"malformed_lines,omitempty"`
	Counts         map[string]int   `json:"counts"`
	EditedSheets   map[string]int   `json:"edited_sheets,omitempty"`
	Sessions       []sessionSummary `json:"sessions"`
	Anomalies      []string         `json:"anomalies,omitempty"`
}

func main() {
	var inputPath string
	var outputPath string
	var since string
	flag.StringVar(&inputPath, "in", "", "telemetry file path (required)")
	flag.StringVar(&outputPath, "out", "", "output JSON path (optional, defaults to stdout)")
	flag.StringVar(&since, "since", "", "only count events at or after this RFC3339 time")
	flag.Parse()

	if inputPath == "" {
		exit(errors.New("missing --in path"))
	}
	var cutoff time.Time
	if since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			exit(fmt.Errorf("--since: %w", err))
		}
		cutoff = ts
	}

	file, err := os.Open(inputPath)
	if err != nil {
		exit(err)
	}
	defer file.Close()

	events, malformed, err := parseEvents(file)
	if err != nil {
		exit(fmt.Errorf("parse events: %w", err))
	}
	rep := buildReport(filepath.Base(inputPath), filterSince(events, cutoff), malformed)

	encoded, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		exit(fmt.Errorf("encode report: %w", err))
	}
	if outputPath == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(outputPath, append(encoded, '\n'), 0o644); err != nil {
		exit(fmt.Errorf("write output: %w", err))
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "eventsummary: %v\n", err)
	os.Exit(1)
}

// parseEvents reads one JSON event per line. Blank lines are skipped and
// undecodable ones are reported by line number.
func parseEvents(r io.Reader) ([]event, []int, error) {
	var (
		scanner   = bufio.NewScanner(r)
		lineNo    = 0
		events    []event
		malformed []int
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil || ev.Event == "" {
			malformed = append(malformed, lineNo)
			continue
		}
		ev.line = lineNo
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return events, malformed, nil
}

func filterSince(events []event, cutoff time.Time) []event {
	if cutoff.IsZero() {
		return events
	}
	out := events[:0:0]
	for _, ev := range events {
		if !ev.Timestamp.Before(cutoff) {
			out = append(out, ev)
		}
	}
	return out
}

func buildReport(source string, events []event, malformed []int) report {
	rep := report{
		Source:         source,
		Events:         len(events),
		MalformedLines: malformed,
		Counts:         make(map[string]int),
		EditedSheets:   make(map[string]int),
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp.Before(events[j].Timestamp) })

	bySession := make(map[string][]event)
	var order []string
	for _, ev := range events {
		rep.Counts[ev.Event]++
		if ev.Event == "edit_commit" && ev.Sheet != "" {
			rep.EditedSheets[ev.Sheet]++
		}
		id := ev.SessionID
		if id == "" {
			id = "unknown"
		}
		if _, seen := bySession[id]; !seen {
			order = append(order, id)
		}
		bySession[id] = append(bySession[id], ev)
	}
	if len(rep.EditedSheets) == 0 {
		rep.EditedSheets = nil
	}
	for _, id := range order {
		s := summarizeSession(id, bySession[id])
		rep.Sessions = append(rep.Sessions, s)
		for _, a := range s.Anomalies {
			rep.Anomalies = append(rep.Anomalies, id+": "+a)
		}
	}
	if len(malformed) > 0 {
		rep.Anomalies = append(rep.Anomalies, fmt.Sprintf("%d malformed lines", len(malformed)))
	}
	return rep
}

func summarizeSession(id string, events []event) sessionSummary {
	s := sessionSummary{
		SessionID: id,
		Events:    len(events),
		Counts:    make(map[string]int),
	}
	if len(events) == 0 {
		return s
	}
	s.StartTime = events[0].Timestamp
	s.EndTime = events[len(events)-1].Timestamp
	s.Duration = s.EndTime.Sub(s.StartTime).Round(time.Second).String()
	sources := make(map[string]bool)
	for _, ev := range events {
		s.Counts[ev.Event]++
		if s.UserID == "" {
			s.UserID = ev.UserID
		}
		if ev.Source != "" && !sources[ev.Source] {
			sources[ev.Source] = true
			s.Sources = append(s.Sources, ev.Source)
		}
	}
	s.Anomalies = detectAnomalies(events, s.Counts)
	return s
}

func detectAnomalies(events []event, counts map[string]int) []string {
	var out []string
	if n := counts["persist_degraded"]; n > 0 {
		out = append(out, fmt.Sprintf("storage quota exceeded %d time(s)", n))
	}
	for _, ev := range events {
		if ev.Event != "import_failed" {
			continue
		}
		reason := strings.TrimSpace(ev.ExtraJSON["error"])
		if reason == "" {
			reason = "unknown error"
		}
		out = append(out, fmt.Sprintf("import of %q failed: %s", ev.Source, reason))
	}
	// A commit between a clear and the next import has no row to land on.
	cleared := false
	for _, ev := range events {
		switch ev.Event {
		case "clear":
			cleared = true
		case "import":
			cleared = false
		case "edit_commit":
			if cleared {
				out = append(out, fmt.Sprintf("edit on %q after clear (line %d)", ev.Sheet, ev.line))
			}
		}
	}
	return out
}
