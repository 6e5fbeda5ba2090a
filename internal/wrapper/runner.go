package wrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// Runner runs the delegate to completion and reports its exit code.
type Runner interface {
	Run(ctx context.Context, name string, args, env []string) (int, error)
}

// ExecRunner runs the delegate as a child process sharing the given stdio.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Foreground reports whether a SIGINT most likely came from the
	// controlling terminal. Defaults to checking the terminal's foreground
	// process group.
	Foreground func() bool
}

// NewExecRunner returns an ExecRunner wired to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts name and waits for it. A delegate that cannot be started is
// an error wrapping ErrDelegateNotFound. A delegate killed by a signal
// reports exit code 1.
func (r *ExecRunner) Run(ctx context.Context, name string, args, env []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("%w %q: %w", ErrDelegateNotFound, name, err)
	}

	foreground := r.Foreground
	if foreground == nil {
		foreground = inForegroundGroup
	}

	stop := forwardSignals(cmd.Process, foreground)
	err := cmd.Wait()
	stop()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				code = 1
			}
			return code, nil
		}
		return 1, fmt.Errorf("failed waiting for %q: %w", name, err)
	}

	return 0, nil
}

// forwardSignals keeps the wrapper alive while the delegate runs so its
// exit code is always observed. SIGTERM is forwarded. SIGINT is forwarded
// unless we are in the terminal's foreground group, in which case the
// terminal has already delivered it to the delegate.
func forwardSignals(p *os.Process, foreground func() bool) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				if sig == os.Interrupt && foreground() {
					continue
				}
				_ = p.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
