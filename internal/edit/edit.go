// Package edit bridges local git changes into a Perforce changelist.
//
// Files that changed between the merge-base with a base branch and HEAD
// are classified and opened in p4 with the matching operation: new files
// are added, modified files edited (or reopened when already checked out
// elsewhere), deleted files deleted, and renames become a delete plus an
// add.
package edit

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// History is the subset of git operations the edit bridge needs.
type History interface {
	MergeBase(ctx context.Context, a, b string) (string, error)
	DiffNameStatus(ctx context.Context, from, to string) ([]string, error)
}

// Depot is the subset of p4 operations the edit bridge needs.
type Depot interface {
	Add(ctx context.Context, changelist, path string) error
	Edit(ctx context.Context, changelist, path string) error
	Reopen(ctx context.Context, changelist, path string) error
	Delete(ctx context.Context, changelist, path string) error
	OpenedChangelist(ctx context.Context, path string) (string, bool, error)
}

// Move is one rename: From was deleted, To was added.
type Move struct {
	From string
	To   string
}

// Changes holds classified local git changes relative to a base revision.
type Changes struct {
	Adds  []string
	Mods  []string
	Dels  []string
	Moves []Move
}

// Empty reports whether no changes were found.
func (c *Changes) Empty() bool {
	return len(c.Adds) == 0 && len(c.Mods) == 0 && len(c.Dels) == 0 && len(c.Moves) == 0
}

// renameStatusRe matches rename statuses like "R100" in name-status output.
var renameStatusRe = regexp.MustCompile(`^r(\d+)$`)

// LocalChanges diffs HEAD against the merge-base with baseBranch and
// classifies the result.
func LocalChanges(ctx context.Context, history History, baseBranch string) (*Changes, error) {
	ancestor, err := history.MergeBase(ctx, baseBranch, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("find common ancestor with %s: %w", baseBranch, err)
	}

	lines, err := history.DiffNameStatus(ctx, ancestor, "HEAD")
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(lines)
}

// ParseNameStatus classifies git diff --name-status lines.
func ParseNameStatus(lines []string) (*Changes, error) {
	changes := &Changes{}
	for _, line := range lines {
		tokens := strings.Split(line, "\t")
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unexpected git status line %q", line)
		}

		status := strings.ToLower(tokens[0])
		path := tokens[1]
		switch {
		case status == "m":
			changes.Mods = append(changes.Mods, path)
		case status == "d":
			changes.Dels = append(changes.Dels, path)
		case status == "a":
			changes.Adds = append(changes.Adds, path)
		case renameStatusRe.MatchString(status):
			if len(tokens) < 3 {
				return nil, fmt.Errorf("rename without target in %q", line)
			}
			changes.Moves = append(changes.Moves, Move{From: path, To: tokens[2]})
		default:
			return nil, fmt.Errorf("unknown git status in %q", line)
		}
	}
	return changes, nil
}

// Opener opens classified changes in a Perforce changelist.
type Opener struct {
	depot Depot

	// DryRun prints the operations without executing them.
	DryRun bool

	// Out receives progress output. Nil means os.Stdout.
	Out io.Writer
}

// NewOpener returns an Opener backed by the given depot.
func NewOpener(depot Depot) *Opener {
	return &Opener{depot: depot}
}

func (o *Opener) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// Open opens every classified change in the changelist. Modified files
// already checked out in another changelist are reopened; files already in
// the target changelist are left alone.
func (o *Opener) Open(ctx context.Context, changes *Changes, changelist string) error {
	for _, path := range changes.Adds {
		if err := o.apply(ctx, "add", changelist, path, o.depot.Add); err != nil {
			return err
		}
	}

	for _, path := range changes.Mods {
		if err := o.openModified(ctx, changelist, path); err != nil {
			return err
		}
	}

	for _, path := range changes.Dels {
		if err := o.apply(ctx, "delete", changelist, path, o.depot.Delete); err != nil {
			return err
		}
	}

	for _, move := range changes.Moves {
		if err := o.apply(ctx, "delete", changelist, move.From, o.depot.Delete); err != nil {
			return err
		}
		if err := o.apply(ctx, "add", changelist, move.To, o.depot.Add); err != nil {
			return err
		}
	}

	return nil
}

func (o *Opener) openModified(ctx context.Context, changelist, path string) error {
	current, opened, err := o.depot.OpenedChangelist(ctx, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	switch {
	case !opened:
		return o.apply(ctx, "edit", changelist, path, o.depot.Edit)
	case current != changelist:
		return o.apply(ctx, "reopen", changelist, path, o.depot.Reopen)
	default:
		// Already opened in the target changelist.
		return nil
	}
}

func (o *Opener) apply(ctx context.Context, verb, changelist, path string, op func(context.Context, string, string) error) error {
	if o.DryRun {
		fmt.Fprintf(o.out(), "would run: p4 %s -c %s %s\n", verb, changelist, path)
		return nil
	}
	if err := op(ctx, changelist, path); err != nil {
		return fmt.Errorf("open %s for %s: %w", path, verb, err)
	}
	return nil
}
