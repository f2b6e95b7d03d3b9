package p4

import (
	"fmt"
	"time"
)

// Stats aggregates live statistics for one sync invocation.
type Stats struct {
	// Total is the expected file count from the dry run, or -1 when
	// unknown (single-file force syncs).
	Total int

	// Processed counts every classified line seen so far.
	Processed int

	start  time.Time
	counts map[Action]int
}

// NewStats starts a statistics window for a sync expected to touch total
// files.
func NewStats(total int) *Stats {
	return &Stats{
		Total:  total,
		start:  time.Now(),
		counts: make(map[Action]int),
	}
}

// Observe records one classified sync line.
func (s *Stats) Observe(action Action) {
	s.counts[action]++
	s.Processed++
}

// Count returns how many lines were classified with the given action.
func (s *Stats) Count(action Action) int {
	return s.counts[action]
}

// NetSynced is the number of files that actually changed on disk.
// A clobbered file was reported but never written.
func (s *Stats) NetSynced() int {
	return s.counts[ActionAdd] + s.counts[ActionUpdate] - s.counts[ActionClobber]
}

// Elapsed returns the wall-clock time since the window started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Summary renders the running stats line shown during and after a sync.
func (s *Stats) Summary() string {
	return fmt.Sprintf("file count %d, time %s", s.NetSynced(), s.Elapsed().Round(time.Millisecond))
}
