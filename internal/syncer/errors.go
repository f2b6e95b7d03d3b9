package syncer

import "errors"

// Errors returned by Sync. Check with errors.Is.
var (
	// ErrDirtyGit means the git working tree has local modifications,
	// which the checkpoint commit would absorb.
	ErrDirtyGit = errors.New("git workspace is not clean")

	// ErrDirtyDepot means files are opened for edit in p4.
	ErrDirtyDepot = errors.New("p4 workspace is not clean")

	// ErrNoCheckpoint means no previous sync is recorded in history.
	ErrNoCheckpoint = errors.New("no previous sync recorded")

	// ErrOlderChangelist means the target predates the last synced
	// changelist and force was not given.
	ErrOlderChangelist = errors.New("changelist is older than last synced")

	// ErrInvalidChangelist means the requested identifier is neither a
	// keyword nor a number.
	ErrInvalidChangelist = errors.New("invalid changelist")

	// ErrClobber means writable files blocked the sync and force was
	// not given.
	ErrClobber = errors.New("writable files blocked sync")
)
