// Package git drives the git command-line client for the mirror
// repository that shadows the Perforce workspace.
//
// Like the depot driver, git is treated as an opaque line-oriented command
// processor reached through internal/proc.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/p4son/git-p4son/internal/proc"
)

// ErrNoWorkspace is returned when no enclosing git workspace is found.
var ErrNoWorkspace = errors.New("not inside a git workspace")

// Repo wraps git operations for one workspace.
type Repo struct {
	run *proc.Runner

	// Scan selects how far back checkpoint discovery looks.
	// Zero value means ScanHistory.
	Scan ScanStrategy
}

// New returns a Repo executing git through the given runner.
func New(runner *proc.Runner) *Repo {
	return &Repo{run: runner, Scan: ScanHistory}
}

// FindRoot walks up from dir to the nearest directory containing .git and
// returns it.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoWorkspace
		}
		dir = parent
	}
}

// Clean reports whether the working tree has no local modifications.
func (r *Repo) Clean(ctx context.Context) (bool, error) {
	res, err := r.run.Run(ctx, "git", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, fmt.Errorf("git status failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return len(res.Stdout) == 0, nil
}

// AddAll stages every change in the working tree.
func (r *Repo) AddAll(ctx context.Context) error {
	res, err := r.run.Run(ctx, "git", "add", ".")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git add failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return nil
}

// Commit records a commit with the given message. With allowEmpty the
// commit is created even when nothing is staged.
func (r *Repo) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}

	res, err := r.run.Run(ctx, "git", args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("git commit failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return nil
}

// MergeBase returns the common ancestor commit of two revisions.
func (r *Repo) MergeBase(ctx context.Context, a, b string) (string, error) {
	res, err := r.run.Run(ctx, "git", "merge-base", a, b)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git merge-base %s %s failed: %s", a, b, strings.Join(res.Stderr, "\n"))
	}
	if len(res.Stdout) != 1 {
		return "", fmt.Errorf("no common ancestor between %s and %s", a, b)
	}
	return strings.TrimSpace(res.Stdout[0]), nil
}

// DiffNameStatus returns the raw name-status lines of the diff between two
// revisions.
func (r *Repo) DiffNameStatus(ctx context.Context, from, to string) ([]string, error) {
	res, err := r.run.Run(ctx, "git", "diff", "--name-status", fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("git diff failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return res.Stdout, nil
}
