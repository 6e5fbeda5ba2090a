package config

import "os"

// Environment variables understood by cargo-clicker.
const (
	// NotifyOnlyVar makes the process play one response for the named
	// outcome and exit. Set by the launcher on the detached child.
	NotifyOnlyVar = "__CARGO_CLICKER_PLAYING_SOUND"
	// ReplacementVar names the tool to run instead of cargo.
	ReplacementVar = "CARGO_CLICKER_ACTUAL"
	// ToolLocationVar is cargo's own pointer to its executable.
	ToolLocationVar = "CARGO"
	// SilenceVar disables every response when present.
	SilenceVar = "CARGO_CLICKER_SILENCE"
	// RecursionGuardVar is set on the delegate so nested invocations stay quiet.
	RecursionGuardVar = "__CARGO_CLICKER_INSIDE_CARGO_CLICKER"
	// ResponsesVar points at a directory of user supplied responses.
	ResponsesVar = "CARGO_CLICKER_RESPONSES"
	// RunIDVar carries the parent's run ID into the detached child.
	RunIDVar = "__CARGO_CLICKER_RUN_ID"
	// LogLevelVar overrides the configured log level.
	LogLevelVar = "CARGO_CLICKER_LOG"
	// ConfigVar overrides the config file path.
	ConfigVar = "CARGO_CLICKER_CONFIG"
)

// RecursionGuardValue is the value written to RecursionGuardVar.
const RecursionGuardValue = "1"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Env is a snapshot of the environment taken once at startup.
type Env struct {
	NotifyOnly    string
	NotifyOnlySet bool

	Replacement  string
	ToolLocation string

	Silence        bool
	RecursionGuard bool

	Responses  string
	RunID      string
	LogLevel   string
	ConfigPath string
}

// ReadEnv builds an Env using lookup, or os.LookupEnv when lookup is nil.
func ReadEnv(lookup LookupFunc) Env {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	has := func(key string) bool {
		_, ok := lookup(key)
		return ok
	}

	notifyOnly, notifyOnlySet := lookup(NotifyOnlyVar)

	return Env{
		NotifyOnly:     notifyOnly,
		NotifyOnlySet:  notifyOnlySet,
		Replacement:    get(ReplacementVar),
		ToolLocation:   get(ToolLocationVar),
		Silence:        has(SilenceVar),
		RecursionGuard: has(RecursionGuardVar),
		Responses:      get(ResponsesVar),
		RunID:          get(RunIDVar),
		LogLevel:       get(LogLevelVar),
		ConfigPath:     get(ConfigVar),
	}
}

// Delegate resolves the tool to run: the replacement override, then the
// standard tool location, then fallback. Empty values count as unset.
func (e Env) Delegate(fallback string) string {
	switch {
	case e.Replacement != "":
		return e.Replacement
	case e.ToolLocation != "":
		return e.ToolLocation
	case fallback != "":
		return fallback
	default:
		return DefaultCommand
	}
}

// Silenced reports whether responses are suppressed by the environment.
func (e Env) Silenced() bool {
	return e.Silence || e.RecursionGuard
}
