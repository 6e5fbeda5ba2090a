// Package launcher starts detached copies of cargo-clicker that play a
// single response and exit.
package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"

	"github.com/jmylchreest/cargo-clicker/internal/config"
	"github.com/jmylchreest/cargo-clicker/internal/model"
)

// Launcher re-executes the running binary in notify-only mode.
type Launcher struct {
	logger     *slog.Logger
	executable string
	environ    []string
	runID      string
	stderr     *os.File
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithExecutable sets the binary to start. Defaults to os.Executable.
func WithExecutable(path string) Option {
	return func(l *Launcher) { l.executable = path }
}

// WithEnviron sets the base environment of the child. Defaults to os.Environ.
func WithEnviron(environ []string) Option {
	return func(l *Launcher) { l.environ = slices.Clone(environ) }
}

// WithRunID forwards a run ID so the child's logs can be correlated.
func WithRunID(id string) Option {
	return func(l *Launcher) { l.runID = id }
}

// WithStderr hands f to the child as its stderr so its log lines stay
// visible. Stdin and stdout are always the null device. A file is required
// because nothing waits on the child to drain a pipe.
func WithStderr(f *os.File) Option {
	return func(l *Launcher) { l.stderr = f }
}

// New creates a Launcher.
func New(logger *slog.Logger, opts ...Option) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Launcher{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	if l.environ == nil {
		l.environ = os.Environ()
	}
	return l
}

// Notify starts a detached process that plays the response for outcome.
// It returns as soon as the process has started and never waits for it.
// Only a failure to start is reported.
func (l *Launcher) Notify(outcome model.Outcome) error {
	exe := l.executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate own executable: %w", err)
		}
	}

	cmd := exec.Command(exe)
	cmd.Env = append(slices.Clone(l.environ), config.NotifyOnlyVar+"="+outcome.String())
	if l.runID != "" {
		cmd.Env = append(cmd.Env, config.RunIDVar+"="+l.runID)
	}
	if l.stderr != nil {
		cmd.Stderr = l.stderr
	}
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start notifier: %w", err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		l.logger.Debug("failed to release notifier", "pid", pid, "error", err)
	}

	l.logger.Debug("notifier started", "pid", pid, "outcome", outcome, "run_id", l.runID)
	return nil
}
