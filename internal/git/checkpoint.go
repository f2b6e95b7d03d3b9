package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A checkpoint is the record of the most recently synced depot changelist.
// It is not stored anywhere on its own: it lives as a marker inside commit
// messages and is re-discovered on every run by scanning commit subjects.

// ScanStrategy selects how far back checkpoint discovery looks.
type ScanStrategy string

const (
	// ScanLastCommit inspects only the subject of the tip commit. Fast,
	// but an intervening manual commit hides the checkpoint.
	ScanLastCommit ScanStrategy = "last-commit"

	// ScanHistory walks subjects of all commits reachable from the tip
	// and takes the newest match, tolerating intervening commits.
	ScanHistory ScanStrategy = "history"
)

// Valid reports whether the strategy is one of the known values.
func (s ScanStrategy) Valid() bool {
	return s == ScanLastCommit || s == ScanHistory
}

// checkpointRe matches a checkpoint commit subject. Any tool-name prefix
// is accepted so checkpoints recorded under earlier tool names keep
// counting after a rename.
var checkpointRe = regexp.MustCompile(`^[\w.-]+: p4 sync //\.\.\.@(\d+)$`)

// CheckpointMessage renders the commit subject that records a synced
// changelist. ParseCheckpoint must round-trip it.
func CheckpointMessage(changelist int) string {
	return fmt.Sprintf("git-p4son: p4 sync //...@%d", changelist)
}

// ParseCheckpoint extracts the changelist from a checkpoint commit
// subject. It returns false for subjects that are not checkpoints.
func ParseCheckpoint(subject string) (int, bool) {
	m := checkpointRe.FindStringSubmatch(subject)
	if m == nil {
		return 0, false
	}
	changelist, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return changelist, true
}

// LastSyncedChangelist scans commit subjects for the newest checkpoint,
// using the repo's scan strategy. Absence of a checkpoint is a valid state
// (no prior sync) and is reported via found=false.
func (r *Repo) LastSyncedChangelist(ctx context.Context) (changelist int, found bool, err error) {
	args := []string{"log", "--pretty=%s"}
	if r.Scan == ScanLastCommit {
		args = append(args, "-1")
	}

	res, err := r.run.Run(ctx, "git", args...)
	if err != nil {
		return 0, false, err
	}
	if res.ExitCode != 0 {
		// A repository with no commits has no checkpoint; anything else
		// is a real failure.
		for _, line := range res.Stderr {
			if strings.Contains(line, "does not have any commits") {
				return 0, false, nil
			}
		}
		return 0, false, fmt.Errorf("git log failed: %s", strings.Join(res.Stderr, "\n"))
	}

	for _, subject := range res.Stdout {
		if cl, ok := ParseCheckpoint(subject); ok {
			return cl, true, nil
		}
	}
	return 0, false, nil
}
