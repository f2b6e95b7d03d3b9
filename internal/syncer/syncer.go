package syncer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/p4son/git-p4son/internal/git"
	"github.com/p4son/git-p4son/internal/p4"
	"github.com/p4son/git-p4son/internal/proc"
	"github.com/p4son/git-p4son/internal/ui"
)

// Reserved changelist keywords, matched case-insensitively.
const (
	// KeywordLatest targets the newest submitted changelist affecting
	// the workspace.
	KeywordLatest = "latest"

	// KeywordLastSynced replays the previous checkpoint, letting an
	// operator retry a half-applied sync against the same target.
	KeywordLastSynced = "last-synced"
)

// Syncer drives one synchronization of the git mirror to a depot
// changelist. It holds no state across invocations: the checkpoint is
// re-discovered from history every run.
type Syncer struct {
	depot   Depot
	history History
	out     io.Writer
	logger  *slog.Logger
}

// New creates a Syncer. out receives user-facing progress (nil means
// os.Stdout); logger receives the trace (nil means slog.Default()).
func New(depot Depot, history History, out io.Writer, logger *slog.Logger) *Syncer {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		depot:   depot,
		history: history,
		out:     out,
		logger:  logger,
	}
}

// Sync resolves the requested changelist identifier and brings the
// workspace and its git mirror to that changelist.
//
// requested is a decimal changelist number or one of the reserved
// keywords; aliases must already be resolved by the caller. With force,
// writable files are overwritten per file and syncing to an older
// changelist is allowed.
//
// Any failure aborts the operation with no rollback: the workspace is
// left exactly as the failing step left it. Retrying is safe because a
// target equal to the checkpoint is a no-op and the healing pass
// re-applies the checkpoint revision first.
func (s *Syncer) Sync(ctx context.Context, requested string, force bool) error {
	// Preconditions: both sides must be clean before anything else, so
	// the checkpoint commit cannot absorb unrelated edits.
	clean, err := s.history.Clean(ctx)
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if !clean {
		return fmt.Errorf("%w: commit or stash local changes first", ErrDirtyGit)
	}

	clean, err = s.depot.Clean(ctx)
	if err != nil {
		return fmt.Errorf("p4 opened: %w", err)
	}
	if !clean {
		return fmt.Errorf("%w: submit or revert opened files first", ErrDirtyDepot)
	}

	last, haveLast, err := s.history.LastSyncedChangelist(ctx)
	if err != nil {
		return fmt.Errorf("discover last synced changelist: %w", err)
	}
	if haveLast {
		s.logger.Debug("previous checkpoint", "changelist", last)
	}

	var target int
	switch strings.ToLower(requested) {
	case KeywordLastSynced:
		if !haveLast {
			return fmt.Errorf("%w: cannot resolve %q", ErrNoCheckpoint, KeywordLastSynced)
		}
		// Replaying the checkpoint re-applies depot state that may have
		// drifted; the checkpoint itself stays as it is.
		return s.syncOne(ctx, last, force)

	case KeywordLatest:
		target, err = s.depot.LatestChangelist(ctx)
		if err != nil {
			return fmt.Errorf("resolve latest changelist: %w", err)
		}
		fmt.Fprintf(s.out, "Latest changelist affecting workspace: %d\n", target)

	default:
		target, err = strconv.Atoi(requested)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidChangelist, requested)
		}
	}

	if haveLast && target == last {
		fmt.Fprintf(s.out, "Changelist of last commit is %d, nothing to do\n", last)
		return nil
	}

	if haveLast && target < last {
		if !force {
			return fmt.Errorf("%w: %d is older than %d, use --force to rewind",
				ErrOlderChangelist, target, last)
		}
		fmt.Fprintf(s.out, "%s syncing to older changelist %d (currently at %d)\n",
			ui.RenderWarn("Warning:"), target, last)
	}

	// Two-phase healing: re-apply the checkpoint revision first so state
	// the distributed-history tooling disturbed (stripped read-only
	// attributes and the like) is restored before moving to the target.
	if haveLast {
		if err := s.syncOne(ctx, last, force); err != nil {
			return err
		}
	}

	if err := s.syncOne(ctx, target, force); err != nil {
		return err
	}

	// Checkpoint: stage whatever the sync changed and always commit,
	// even when nothing changed, so the next run finds the marker.
	clean, err = s.history.Clean(ctx)
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if !clean {
		if err := s.history.AddAll(ctx); err != nil {
			return fmt.Errorf("stage synced files: %w", err)
		}
	}
	if err := s.history.Commit(ctx, git.CheckpointMessage(target), true); err != nil {
		return fmt.Errorf("record checkpoint: %w", err)
	}

	fmt.Fprintf(s.out, "%s synced to changelist %d\n", ui.RenderPass("Finished:"), target)
	return nil
}

// syncOne runs the single-revision sync procedure against one changelist:
// dry-run count, streamed sync with live progress, and per-file forced
// clobber recovery.
func (s *Syncer) syncOne(ctx context.Context, changelist int, force bool) error {
	total, err := s.depot.FileCountToSync(ctx, changelist)
	if err != nil {
		return fmt.Errorf("count files for @%d: %w", changelist, err)
	}
	if total == 0 {
		fmt.Fprintln(s.out, "All files are up to date")
		return nil
	}
	fmt.Fprintf(s.out, "Syncing %d files\n", total)

	stats := p4.NewStats(total)
	res, err := s.depot.Sync(ctx, changelist, s.progress(stats))
	if err != nil {
		return fmt.Errorf("p4 sync @%d: %w", changelist, err)
	}
	s.printSummary(stats)

	if res.ExitCode == 0 {
		return nil
	}

	writable := p4.WritableFiles(res.Stderr)
	if len(writable) == 0 {
		return fmt.Errorf("p4 sync @%d failed: %s", changelist, strings.Join(res.Stderr, "\n"))
	}

	fmt.Fprintf(s.out, "Found %d writable files\n", len(writable))
	if !force {
		for _, path := range writable {
			fmt.Fprintln(s.out, path)
		}
		return fmt.Errorf("%w: use --force to overwrite them", ErrClobber)
	}

	for _, path := range writable {
		if err := s.forceSyncFile(ctx, changelist, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) forceSyncFile(ctx context.Context, changelist int, path string) error {
	stats := p4.NewStats(-1)
	res, err := s.depot.ForceSyncFile(ctx, changelist, path, s.progress(stats))
	if err != nil {
		return fmt.Errorf("force sync %s@%d: %w", path, changelist, err)
	}
	s.printSummary(stats)

	if res.ExitCode != 0 {
		return fmt.Errorf("force sync %s@%d failed: %s", path, changelist, strings.Join(res.Stderr, "\n"))
	}
	return nil
}

// progress returns the per-line callback wiring the sync event parser and
// the stats aggregator into one depot-sync invocation.
func (s *Syncer) progress(stats *p4.Stats) proc.LineFunc {
	return func(line string, stream proc.Stream) {
		if p4.IsUpToDateNotice(line) {
			fmt.Fprintln(s.out, "All files are up to date")
			return
		}

		action, path := p4.ParseSyncLine(line)
		if action == p4.ActionNone {
			fmt.Fprintf(s.out, "Unparsable line: %s\n", line)
			return
		}

		stats.Observe(action)
		fmt.Fprintf(s.out, "%s: %s\n", ui.RenderAction(string(action)), path)
		if stats.Total >= 0 {
			fmt.Fprintf(s.out, "     progress: %d / %d\n", stats.Processed, stats.Total)
		}
		fmt.Fprintf(s.out, "     sync stats %s\n", stats.Summary())
	}
}

func (s *Syncer) printSummary(stats *p4.Stats) {
	fmt.Fprintf(s.out, "Sync stats: %s\n", stats.Summary())
	for _, action := range []p4.Action{p4.ActionAdd, p4.ActionDelete, p4.ActionUpdate, p4.ActionClobber} {
		fmt.Fprintf(s.out, "%s\n  count: %d\n", action, stats.Count(action))
	}
}
