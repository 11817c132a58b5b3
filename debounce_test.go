package main

import (
	"fmt"
	"testing"
	"time"
)

func TestSearchDebouncerRunsOnlyLatestQuery(t *testing.T) {
	d := newSearchDebouncer(time.Millisecond)
	var msgs []searchDebounceMsg
	for i := 1; i <= 10; i++ {
		cmd := d.Schedule(fmt.Sprintf("q%d", i))
		msgs = append(msgs, cmd().(searchDebounceMsg))
	}

	ready := 0
	var query string
	for _, msg := range msgs {
		if d.Ready(msg) {
			ready++
			query = msg.Query
		}
	}
	if ready != 1 || query != "q10" {
		t.Fatalf("expected exactly the last query to run, got %d runs (last %q)", ready, query)
	}
}

func TestSearchDebouncerCancel(t *testing.T) {
	d := newSearchDebouncer(time.Millisecond)
	msg := d.Schedule("broca")().(searchDebounceMsg)
	d.Cancel()
	if d.Ready(msg) {
		t.Fatal("cancelled query should not run")
	}
}

func TestSearchDebouncerDefaultDelay(t *testing.T) {
	if d := newSearchDebouncer(0); d.delay != 250*time.Millisecond {
		t.Fatalf("unexpected default delay %v", d.delay)
	}
}
