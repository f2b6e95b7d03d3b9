// Package p4 drives the Perforce command-line client for one workspace.
//
// The depot is treated as an opaque, fallible, line-oriented command
// processor: every operation shells out through internal/proc and parses
// the client's text output. The fixed message markers this package relies
// on are documented next to their patterns.
package p4

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/p4son/git-p4son/internal/proc"
)

// Common errors returned by depot operations.
var (
	// ErrNoClient is returned when p4 info reports no client workspace.
	ErrNoClient = errors.New("no p4 client workspace")

	// ErrNoChangelists is returned when no submitted changelist touches
	// the workspace view.
	ErrNoChangelists = errors.New("no changelists affect the workspace")
)

// changeNumberRe extracts the changelist number from lines like
// "Change 12345 on 2023/01/01 by user@workspace 'description'".
var changeNumberRe = regexp.MustCompile(`Change (\d+)`)

// editChangeRe extracts the changelist from p4 opened lines like
// "//depot/path/file#1 - edit change 12345 (text) by user@workspace".
var editChangeRe = regexp.MustCompile(`change (\d+)`)

// Depot wraps the p4 client for a single workspace directory.
type Depot struct {
	run *proc.Runner
}

// New returns a Depot executing p4 through the given runner.
func New(runner *proc.Runner) *Depot {
	return &Depot{run: runner}
}

// Clean reports whether the workspace has no files opened for edit.
func (d *Depot) Clean(ctx context.Context) (bool, error) {
	res, err := d.run.Run(ctx, "p4", "opened")
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, fmt.Errorf("p4 opened failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return len(res.Stdout) == 0, nil
}

// ClientName returns the workspace client name from p4 info.
func (d *Depot) ClientName(ctx context.Context) (string, error) {
	res, err := d.run.Run(ctx, "p4", "info")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("p4 info failed: %s", strings.Join(res.Stderr, "\n"))
	}

	name := proc.ParseKeyValue(res.Stdout)["Client name"]
	if name == "" {
		return "", ErrNoClient
	}
	return name, nil
}

// LatestChangelist returns the newest submitted changelist that touches
// files in the client's workspace view.
func (d *Depot) LatestChangelist(ctx context.Context) (int, error) {
	client, err := d.ClientName(ctx)
	if err != nil {
		return 0, err
	}

	res, err := d.run.Run(ctx, "p4", "changes", "-m1", "-s", "submitted",
		fmt.Sprintf("//%s/...#head", client))
	if err != nil {
		return 0, err
	}
	if res.ExitCode != 0 {
		return 0, fmt.Errorf("p4 changes failed: %s", strings.Join(res.Stderr, "\n"))
	}
	if len(res.Stdout) == 0 {
		return 0, ErrNoChangelists
	}

	m := changeNumberRe.FindStringSubmatch(res.Stdout[0])
	if m == nil {
		return 0, fmt.Errorf("unexpected p4 changes output: %q", res.Stdout[0])
	}
	return strconv.Atoi(m[1])
}

// FileCountToSync returns how many files a sync to the changelist would
// touch, using a dry run. The dry run prints one line per file.
func (d *Depot) FileCountToSync(ctx context.Context, changelist int) (int, error) {
	res, err := d.run.Run(ctx, "p4", "sync", "-n", fmt.Sprintf("//...@%d", changelist))
	if err != nil {
		return 0, err
	}
	if res.ExitCode != 0 {
		return 0, fmt.Errorf("p4 sync -n failed: %s", strings.Join(res.Stderr, "\n"))
	}
	return len(res.Stdout), nil
}

// Sync runs the real sync to the changelist, streaming each output line to
// onLine as it arrives. The returned result carries the exit code and the
// captured stderr; a clobber refusal surfaces as a nonzero exit with
// clobber lines on stderr, which the caller extracts via WritableFiles.
func (d *Depot) Sync(ctx context.Context, changelist int, onLine proc.LineFunc) (*proc.Result, error) {
	return d.run.RunStreaming(ctx, onLine, "p4", "sync", fmt.Sprintf("//...@%d", changelist))
}

// ForceSyncFile re-syncs a single file at the changelist with -f,
// overwriting a writable copy on disk.
func (d *Depot) ForceSyncFile(ctx context.Context, changelist int, path string, onLine proc.LineFunc) (*proc.Result, error) {
	return d.run.RunStreaming(ctx, onLine, "p4", "sync", "-f",
		fmt.Sprintf("%s@%d", path, changelist))
}

// OpenedChangelist reports which changelist a file is opened in.
// It returns ("", false, nil) when the file is not opened. Files opened in
// the default changelist report the changelist "default".
func (d *Depot) OpenedChangelist(ctx context.Context, path string) (string, bool, error) {
	res, err := d.run.Run(ctx, "p4", "opened", path)
	if err != nil {
		return "", false, err
	}

	// The not-opened sentinel can land on either stream depending on the
	// client version.
	for _, line := range append(res.Stdout, res.Stderr...) {
		if strings.Contains(line, "file(s) not opened on this client") {
			return "", false, nil
		}
	}
	if res.ExitCode != 0 {
		return "", false, fmt.Errorf("p4 opened %s failed: %s", path, strings.Join(res.Stderr, "\n"))
	}
	if len(res.Stdout) == 0 {
		return "", false, nil
	}

	for _, line := range res.Stdout {
		if strings.Contains(line, "- edit default change ") {
			return "default", true, nil
		}
		if strings.Contains(line, "- edit change ") {
			if m := editChangeRe.FindStringSubmatch(line); m != nil {
				return m[1], true, nil
			}
		}
	}

	// Opened, but in a form we could not attribute to a changelist.
	return "", false, nil
}

// Add opens a new file for add in the changelist.
func (d *Depot) Add(ctx context.Context, changelist, path string) error {
	return d.fileOp(ctx, "add", changelist, path)
}

// Edit opens an existing file for edit in the changelist.
func (d *Depot) Edit(ctx context.Context, changelist, path string) error {
	return d.fileOp(ctx, "edit", changelist, path)
}

// Reopen moves an already-opened file into the changelist.
func (d *Depot) Reopen(ctx context.Context, changelist, path string) error {
	return d.fileOp(ctx, "reopen", changelist, path)
}

// Delete opens a file for delete in the changelist.
func (d *Depot) Delete(ctx context.Context, changelist, path string) error {
	return d.fileOp(ctx, "delete", changelist, path)
}

func (d *Depot) fileOp(ctx context.Context, verb, changelist, path string) error {
	res, err := d.run.Run(ctx, "p4", verb, "-c", changelist, path)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("p4 %s %s failed: %s", verb, path, strings.Join(res.Stderr, "\n"))
	}
	return nil
}
