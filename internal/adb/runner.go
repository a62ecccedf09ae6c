// Package adb wraps invocation of the Android Debug Bridge binary: discovery,
// argument assembly, timeouts, dry-run, and device selection.
package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"adbhelper/internal/cli"
)

// DefaultTimeout bounds a single adb invocation when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// Options configures a Runner.
type Options struct {
	Path    string        // explicit adb binary or platform-tools directory; empty means $PATH lookup
	Serial  string        // device serial passed as -s; empty means let adb decide
	Timeout time.Duration // per-invocation deadline; 0 means DefaultTimeout
	DryRun  bool          // print commands instead of executing
	DryOut  io.Writer     // dry-run destination; nil means os.Stdout
}

// Runner executes adb commands.
type Runner struct {
	path    string
	serial  string
	timeout time.Duration
	dryRun  bool
	dryOut  io.Writer
}

// Result holds the outcome of one adb invocation. Stdout and Stderr hold
// whatever was captured, including partial output from a timed-out command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// NewRunner discovers the adb binary and returns a ready Runner.
func NewRunner(opts Options) (*Runner, error) {
	path, err := discover(opts.Path)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		path:    path,
		serial:  opts.Serial,
		timeout: opts.Timeout,
		dryRun:  opts.DryRun,
		dryOut:  opts.DryOut,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.dryOut == nil {
		r.dryOut = os.Stdout
	}
	return r, nil
}

// Path returns the resolved adb binary path.
func (r *Runner) Path() string { return r.path }

// Serial returns the configured device serial, which may be empty.
func (r *Runner) Serial() string { return r.serial }

// Timeout returns the per-invocation deadline.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// WithSerial returns a copy of the Runner bound to the given serial.
func (r *Runner) WithSerial(serial string) *Runner {
	clone := *r
	clone.serial = serial
	return &clone
}

// WithTimeout returns a copy of the Runner with a different per-invocation
// deadline. Used by commands whose natural runtime exceeds the global timeout,
// such as screen recording.
func (r *Runner) WithTimeout(timeout time.Duration) *Runner {
	clone := *r
	if timeout > 0 {
		clone.timeout = timeout
	}
	return &clone
}

// discover resolves the adb binary: explicit file, platform-tools directory,
// or $PATH lookup.
func discover(path string) (string, error) {
	name := "adb"
	if runtime.GOOS == "windows" {
		name = "adb.exe"
	}

	if path != "" {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			return "", cli.NewBinaryNotFoundError(fmt.Sprintf("no %s in directory %s", name, path))
		}
		if err == nil {
			return path, nil
		}
		return "", cli.NewBinaryNotFoundError(fmt.Sprintf("adb not found at %s", path))
	}

	found, err := exec.LookPath(name)
	if err != nil {
		return "", cli.NewBinaryNotFoundError("adb not found in PATH: install Android SDK platform-tools or pass --adb")
	}
	return found, nil
}

// argv builds the full command line including the -s selector.
func (r *Runner) argv(args []string) []string {
	cmd := []string{r.path}
	if r.serial != "" {
		cmd = append(cmd, "-s", r.serial)
	}
	return append(cmd, args...)
}

// Run executes one adb command under the Runner's timeout, capturing output.
// On timeout the child is killed and a timeout error is returned alongside
// whatever output was already captured.
func (r *Runner) Run(ctx context.Context, args ...string) (*Result, error) {
	argv := r.argv(args)
	logrus.Debugf("adb cmd: %s", strings.Join(argv, " "))

	if r.dryRun {
		fmt.Fprintf(r.dryOut, "[dry-run] %s\n", strings.Join(argv, " "))
		return &Result{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return res, cli.NewTimeoutError(fmt.Sprintf("command exceeded %s: %s", r.timeout, strings.Join(argv, " ")))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return res, cli.NewBinaryNotFoundError(fmt.Sprintf("adb not executable at %s", r.path))
	}
	return res, cli.NewCommandFailedError(fmt.Sprintf("run %s: %v", strings.Join(argv, " "), err))
}

// RunChecked is Run but treats a non-zero adb exit as an error, folding
// stderr into the message.
func (r *Runner) RunChecked(ctx context.Context, args ...string) (*Result, error) {
	res, err := r.Run(ctx, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(res.Stdout)
		}
		return res, cli.NewCommandFailedError(fmt.Sprintf("adb %s exited %d: %s",
			strings.Join(args, " "), res.ExitCode, detail))
	}
	return res, nil
}

// Stream runs a long-lived adb command (logcat, exec-out) writing stdout to w.
// The command runs until it exits or ctx is cancelled; cancellation is not an
// error. A zero maxRun leaves the duration unbounded.
func (r *Runner) Stream(ctx context.Context, w io.Writer, maxRun time.Duration, args ...string) error {
	argv := r.argv(args)
	logrus.Debugf("adb stream: %s", strings.Join(argv, " "))

	if r.dryRun {
		fmt.Fprintf(r.dryOut, "[dry-run] %s\n", strings.Join(argv, " "))
		return nil
	}

	if maxRun > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, maxRun)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = w
	cmd.Stderr = &stderr
	// ask the child to stop gracefully before the hard kill
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 3 * time.Second

	err := cmd.Run()
	if err == nil || ctx.Err() != nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logrus.Warnf("adb %s exited %d: %s", strings.Join(args, " "),
			exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return cli.NewBinaryNotFoundError(fmt.Sprintf("adb not executable at %s", r.path))
	}
	return cli.NewCommandFailedError(fmt.Sprintf("stream %s: %v", strings.Join(argv, " "), err))
}
