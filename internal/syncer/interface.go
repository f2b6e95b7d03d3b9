// Package syncer implements the synchronization state machine that keeps
// the git mirror a checkpointed copy of chosen depot changelists.
package syncer

import (
	"context"

	"github.com/p4son/git-p4son/internal/proc"
)

// Depot is the Perforce side of a sync.
//
// Sync and ForceSyncFile report the depot tool's own failures through the
// result's exit code; an error return means the command could not be run
// at all.
type Depot interface {
	// Clean reports whether no files are opened for edit.
	Clean(ctx context.Context) (bool, error)

	// LatestChangelist returns the newest submitted changelist touching
	// the workspace view.
	LatestChangelist(ctx context.Context) (int, error)

	// FileCountToSync returns the dry-run file count for a changelist.
	FileCountToSync(ctx context.Context, changelist int) (int, error)

	// Sync runs the real sync, streaming output lines to onLine.
	Sync(ctx context.Context, changelist int, onLine proc.LineFunc) (*proc.Result, error)

	// ForceSyncFile force-syncs one file at the changelist.
	ForceSyncFile(ctx context.Context, changelist int, path string, onLine proc.LineFunc) (*proc.Result, error)
}

// History is the git mirror side of a sync.
type History interface {
	// Clean reports whether the working tree has no local modifications.
	Clean(ctx context.Context) (bool, error)

	// AddAll stages every change in the working tree.
	AddAll(ctx context.Context) error

	// Commit records a commit; with allowEmpty even when nothing is
	// staged.
	Commit(ctx context.Context, message string, allowEmpty bool) error

	// LastSyncedChangelist discovers the previous checkpoint.
	// found is false when no sync was ever recorded, a valid state.
	LastSyncedChangelist(ctx context.Context) (changelist int, found bool, err error)
}
