// Package proc runs external commands and streams their output line by line.
//
// Both the Perforce and git drivers are built on this package. A command is
// executed with its stdout and stderr scanned concurrently, each line handed
// to an optional callback as it arrives, and the full captured output
// returned once the process has exited and both streams are drained.
package proc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stream identifies which output stream a line came from.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// String returns "stdout" or "stderr".
func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Result holds the outcome of one command run.
//
// A nonzero exit code is data, not an error: callers distinguish "ran and
// reported failure" (Result with ExitCode != 0) from "failed to launch"
// (error return). A Result is immutable once returned.
type Result struct {
	ExitCode int
	Stdout   []string
	Stderr   []string
}

// LineFunc receives one output line as it arrives, tagged with its stream.
type LineFunc func(line string, stream Stream)

// DefaultGracePeriod is how long a child gets to exit after SIGTERM
// before it is forcibly killed.
const DefaultGracePeriod = 5 * time.Second

// lineChanSize bounds the per-stream line channels. The coordinator drains
// continuously, so the child never blocks on a full pipe.
const lineChanSize = 256

// Runner executes commands in a fixed working directory.
type Runner struct {
	// Dir is the working directory for every command.
	Dir string

	// Grace is the SIGTERM-to-SIGKILL window on cancellation.
	// Zero means DefaultGracePeriod.
	Grace time.Duration

	// Logger receives command trace records. Nil means slog.Default().
	Logger *slog.Logger
}

// NewRunner returns a Runner for the given working directory.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir}
}

func (r *Runner) gracePeriod() time.Duration {
	if r.Grace > 0 {
		return r.Grace
	}
	return DefaultGracePeriod
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run executes the command and captures its output without streaming.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return r.run(ctx, nil, nil, name, args...)
}

// RunInput executes the command with input fed to its stdin. Used for
// form-style commands such as "p4 change -i".
func (r *Runner) RunInput(ctx context.Context, input string, name string, args ...string) (*Result, error) {
	return r.run(ctx, strings.NewReader(input), nil, name, args...)
}

// RunStreaming executes the command and delivers every output line to onLine
// as it arrives. It returns once the process has exited and both streams
// have been fully drained.
//
// Lines within one stream preserve program order; no ordering is guaranteed
// between stdout and stderr. No line is lost or duplicated.
//
// If ctx is cancelled, the child is sent SIGTERM, given the grace period to
// exit, then killed; the call fails with the context error.
func (r *Runner) RunStreaming(ctx context.Context, onLine LineFunc, name string, args ...string) (*Result, error) {
	return r.run(ctx, nil, onLine, name, args...)
}

func (r *Runner) run(ctx context.Context, stdin io.Reader, onLine LineFunc, name string, args ...string) (*Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	r.logger().Debug("command started", "cmd", JoinCommandLine(append([]string{name}, args...)), "dir", r.Dir)

	outCh := make(chan string, lineChanSize)
	errCh := make(chan string, lineChanSize)

	var readers errgroup.Group
	readers.Go(func() error {
		defer close(outCh)
		return scanLines(stdout, outCh)
	})
	readers.Go(func() error {
		defer close(errCh)
		return scanLines(stderr, errCh)
	})

	// The coordinator selects over both line channels until each reader
	// has hit end-of-stream. Killing the child closes its pipe ends, so
	// cancellation also unblocks the readers.
	res := &Result{}
	interrupted := false
	done := ctx.Done()
	for outCh != nil || errCh != nil {
		select {
		case line, ok := <-outCh:
			if !ok {
				outCh = nil
				continue
			}
			res.Stdout = append(res.Stdout, line)
			if onLine != nil {
				onLine(line, Stdout)
			}
		case line, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			res.Stderr = append(res.Stderr, line)
			if onLine != nil {
				onLine(line, Stderr)
			}
		case <-done:
			done = nil
			interrupted = true
			go r.terminate(cmd)
		}
	}

	readErr := readers.Wait()
	waitErr := cmd.Wait()
	r.logger().Debug("command finished", "cmd", name, "elapsed", time.Since(start), "exit", cmd.ProcessState.ExitCode())

	if interrupted {
		return nil, fmt.Errorf("%s interrupted: %w", name, ctx.Err())
	}
	if readErr != nil {
		return nil, fmt.Errorf("read %s output: %w", name, readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, fmt.Errorf("wait for %s: %w", name, waitErr)
	}
	return res, nil
}

// terminate requests a graceful exit and escalates to SIGKILL after the
// grace period. Signalling an already-exited process is a harmless error.
func (r *Runner) terminate(cmd *exec.Cmd) {
	proc := cmd.Process
	if proc == nil {
		return
	}
	_ = proc.Signal(syscall.SIGTERM)
	time.Sleep(r.gracePeriod())
	_ = proc.Kill()
}

func scanLines(src io.Reader, out chan<- string) error {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out <- sc.Text()
	}
	return sc.Err()
}
