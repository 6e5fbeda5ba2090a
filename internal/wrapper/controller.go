package wrapper

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/cargo-clicker/internal/audio"
	"github.com/jmylchreest/cargo-clicker/internal/config"
	"github.com/jmylchreest/cargo-clicker/internal/launcher"
	"github.com/jmylchreest/cargo-clicker/internal/model"
)

// Notifier hands an outcome to something that plays it without blocking.
type Notifier interface {
	Notify(outcome model.Outcome) error
}

// Responder plays the response for an outcome, blocking until done.
type Responder interface {
	PlayOutcome(outcome model.Outcome) error
}

// Controller is the entry point of every cargo-clicker process.
type Controller struct {
	logger *slog.Logger
	cfg    *config.Config
	env    config.Env
	runID  string

	environ        []string
	notifierStderr *os.File
	runner         Runner
	notifier       Notifier
	responder      Responder
}

// Option configures a Controller.
type Option func(*Controller)

// WithRunner replaces the delegate runner.
func WithRunner(r Runner) Option {
	return func(c *Controller) { c.runner = r }
}

// WithNotifier replaces the detached notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithResponder replaces the in-process response player.
func WithResponder(r Responder) Option {
	return func(c *Controller) { c.responder = r }
}

// WithEnviron sets the environment forwarded to the delegate.
func WithEnviron(environ []string) Option {
	return func(c *Controller) { c.environ = slices.Clone(environ) }
}

// WithNotifierStderr sets the stderr of the default detached notifier.
func WithNotifierStderr(f *os.File) Option {
	return func(c *Controller) { c.notifierStderr = f }
}

// WithRunID sets the run ID forwarded to the notifier.
func WithRunID(id string) Option {
	return func(c *Controller) { c.runID = id }
}

// NewRunID returns a fresh ULID for correlating a run's processes.
func NewRunID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}

// New creates a Controller from the loaded configuration and the
// environment snapshot taken at startup.
func New(cfg *config.Config, env config.Env, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &Controller{
		logger: logger,
		cfg:    cfg,
		env:    env,
		runID:  env.RunID,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.environ == nil {
		c.environ = os.Environ()
	}
	if c.runner == nil {
		c.runner = NewExecRunner()
	}
	if c.notifier == nil {
		c.notifier = launcher.New(logger,
			launcher.WithEnviron(c.environ),
			launcher.WithRunID(c.runID),
			launcher.WithStderr(c.notifierStderr),
		)
	}
	if c.responder == nil {
		c.responder = audio.NewManagerFromConfig(cfg, env, logger)
	}

	return c
}

// Run handles one invocation. argv is the full argument vector including
// the program name. The returned code is what the process should exit with;
// a non-nil error should be reported even when the code is the delegate's.
func (c *Controller) Run(ctx context.Context, argv []string) (int, error) {
	if c.env.NotifyOnlySet {
		return c.respond()
	}

	delegate := c.env.Delegate(c.cfg.Delegate.Command)
	args := StripSelfArgs(argv, c.cfg.Delegate.Alias)
	silenced := c.env.Silenced()

	env := append(slices.Clone(c.environ), config.RecursionGuardVar+"="+config.RecursionGuardValue)
	if c.runID != "" {
		// Nested invocations log under the same run.
		env = append(env, config.RunIDVar+"="+c.runID)
	}

	c.logger.Debug("running delegate", "delegate", delegate, "args", args, "silenced", silenced)

	start := time.Now()
	code, err := c.runner.Run(ctx, delegate, args, env)
	if err != nil {
		return 1, err
	}

	c.logger.Debug("delegate finished",
		"delegate", delegate,
		"code", code,
		"took", elapsed(start, time.Now()),
	)

	if silenced {
		c.logger.Debug("response suppressed by environment",
			"silence", c.env.Silence, "recursive", c.env.RecursionGuard)
		return code, nil
	}

	if IsQuiet(args) {
		c.logger.Debug("response suppressed by quiet flag")
		return code, nil
	}

	outcome := model.OutcomeFromExitCode(code)
	if err := c.notifier.Notify(outcome); err != nil {
		return code, fmt.Errorf("failed to play %s response: %w", outcome, err)
	}

	return code, nil
}

// elapsed formats the time between start and end, e.g. "12 seconds".
func elapsed(start, end time.Time) string {
	return strings.TrimSpace(humanize.RelTime(start, end, "", ""))
}

// respond is the detached notifier's whole job: play one response and exit.
func (c *Controller) respond() (int, error) {
	outcome, err := model.ParseOutcome(c.env.NotifyOnly)
	if err != nil {
		return 1, err
	}

	c.logger.Debug("playing response", "outcome", outcome)
	if err := c.responder.PlayOutcome(outcome); err != nil {
		return 1, err
	}
	return 0, nil
}
