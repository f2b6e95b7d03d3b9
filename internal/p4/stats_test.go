package p4

import (
	"strings"
	"testing"
)

func TestStatsObserve(t *testing.T) {
	stats := NewStats(10)

	for range 3 {
		stats.Observe(ActionAdd)
	}
	for range 2 {
		stats.Observe(ActionUpdate)
	}
	stats.Observe(ActionDelete)
	stats.Observe(ActionClobber)

	if stats.Processed != 7 {
		t.Errorf("Processed = %d, want 7", stats.Processed)
	}
	if got := stats.Count(ActionAdd); got != 3 {
		t.Errorf("Count(add) = %d, want 3", got)
	}
	if got := stats.Count(ActionDelete); got != 1 {
		t.Errorf("Count(del) = %d, want 1", got)
	}

	// Clobbered files are reported but never written.
	if got := stats.NetSynced(); got != 4 {
		t.Errorf("NetSynced = %d, want 4", got)
	}
}

func TestStatsZero(t *testing.T) {
	stats := NewStats(-1)
	if stats.NetSynced() != 0 {
		t.Errorf("NetSynced = %d, want 0", stats.NetSynced())
	}
	if stats.Count(ActionAdd) != 0 {
		t.Errorf("Count(add) = %d, want 0", stats.Count(ActionAdd))
	}
}

func TestStatsSummary(t *testing.T) {
	stats := NewStats(5)
	stats.Observe(ActionAdd)
	stats.Observe(ActionUpdate)

	got := stats.Summary()
	if !strings.HasPrefix(got, "file count 2, time ") {
		t.Errorf("Summary = %q, want prefix %q", got, "file count 2, time ")
	}
}
