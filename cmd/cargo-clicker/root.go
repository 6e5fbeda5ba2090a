package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cargo-clicker/internal/config"
	"github.com/jmylchreest/cargo-clicker/internal/wrapper"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var logger *slog.Logger

// delegateArgs holds every argument after the program name. cobra is handed
// an empty argument list so that none of them ("completion", "__complete",
// "help", ...) can be routed to one of its built-in commands.
var delegateArgs []string

// rootCmd forwards every argument to the delegate; it has no flags of its own.
var rootCmd = &cobra.Command{
	Use:   "cargo-clicker [cargo arguments...]",
	Short: "Run cargo and hear how it went",
	Long: `cargo-clicker runs cargo (or CARGO_CLICKER_ACTUAL) with the given arguments,
exits with cargo's exit code, and plays a short response in the background.

It can be invoked directly or as a cargo subcommand:

  cargo-clicker build --release
  cargo clicker test

Responses are skipped for --quiet / -q runs, when CARGO_CLICKER_SILENCE is
set, and for nested invocations. Set CARGO_CLICKER_RESPONSES to a directory
with Positive/ and Negative/ subdirectories to use your own sounds.`,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	Args:               cobra.ArbitraryArgs,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runWrapper,
}

// Execute runs the root command and exits with the delegate's code.
func Execute() {
	err := execute(os.Args[1:])
	if err == nil {
		os.Exit(0)
	}

	var exitErr *wrapper.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			reportError(exitErr.Err)
		}
		os.Exit(exitErr.Code)
	}

	reportError(err)
	os.Exit(1)
}

// execute runs the root command with args forwarded untouched.
func execute(args []string) error {
	delegateArgs = args
	rootCmd.SetArgs([]string{})
	return rootCmd.Execute()
}

func runWrapper(cmd *cobra.Command, _ []string) error {
	env := config.ReadEnv(nil)

	cfg, err := config.LoadConfig(env.ConfigPath)
	if err != nil {
		return &wrapper.ExitError{Code: 1, Err: fmt.Errorf("failed to load config: %w", err)}
	}

	runID := env.RunID
	if runID == "" {
		runID = wrapper.NewRunID()
	}

	if err := setupLogger(cfg, env, runID); err != nil {
		return &wrapper.ExitError{Code: 1, Err: err}
	}
	logger.Debug("starting", "version", version, "commit", commit, "built", buildTime,
		"notify_only", env.NotifyOnlySet)

	controller := wrapper.New(cfg, env, logger,
		wrapper.WithRunID(runID),
		wrapper.WithNotifierStderr(notifierStderr(logger)),
	)

	argv := append([]string{os.Args[0]}, delegateArgs...)
	code, err := controller.Run(cmd.Context(), argv)
	if err != nil || code != 0 {
		return &wrapper.ExitError{Code: code, Err: err}
	}
	return nil
}

// setupLogger configures the global slog logger.
func setupLogger(cfg *config.Config, env config.Env, runID string) error {
	level, err := cfg.LogLevel(env)
	if err != nil {
		return err
	}

	// Log to stderr so the delegate's stdout stays clean
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler).With("run_id", runID)
	slog.SetDefault(logger)
	return nil
}

// notifierStderr returns where the detached notifier should log. Its output
// is only worth keeping when debug logging is on; otherwise it is discarded.
func notifierStderr(l *slog.Logger) *os.File {
	if l != nil && l.Enabled(context.Background(), slog.LevelDebug) {
		return os.Stderr
	}
	return nil
}

// reportError prints a one-line diagnostic naming this program.
func reportError(err error) {
	name := "cargo-clicker"
	if exe, exeErr := os.Executable(); exeErr == nil {
		name = exe
	}
	fmt.Fprintf(os.Stderr, "%s - error: %v\n", name, err)
}
