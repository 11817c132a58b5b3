package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// searchDebounceMsg fires after the quiet period. Only the message carrying
// the latest id is acted on; older ones were superseded by later keystrokes.
type searchDebounceMsg struct {
	ID    int
	Query string
}

type searchDebouncer struct {
	delay  time.Duration
	lastID int
}

func newSearchDebouncer(delay time.Duration) *searchDebouncer {
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	return &searchDebouncer{delay: delay}
}

// Schedule supersedes any pending query and returns the tick for query.
func (d *searchDebouncer) Schedule(query string) tea.Cmd {
	d.lastID++
	id := d.lastID
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{ID: id, Query: query}
	})
}

// Ready reports whether msg is the most recent scheduled query.
func (d *searchDebouncer) Ready(msg searchDebounceMsg) bool {
	return msg.ID == d.lastID
}

// Cancel drops whatever is pending.
func (d *searchDebouncer) Cancel() {
	d.lastID++
}
