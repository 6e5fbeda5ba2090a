package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestReadEnv_Empty(t *testing.T) {
	env := ReadEnv(lookupFrom(nil))

	assert.False(t, env.NotifyOnlySet)
	assert.False(t, env.Silenced())
	assert.Equal(t, "cargo", env.Delegate(DefaultCommand))
}

func TestReadEnv_AllVariables(t *testing.T) {
	env := ReadEnv(lookupFrom(map[string]string{
		NotifyOnlyVar:     "Negative",
		ReplacementVar:    "cargo-mommy",
		ToolLocationVar:   "/usr/bin/cargo",
		SilenceVar:        "",
		RecursionGuardVar: "1",
		ResponsesVar:      "/sounds",
		RunIDVar:          "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		LogLevelVar:       "debug",
		ConfigVar:         "/etc/clicker.toml",
	}))

	assert.True(t, env.NotifyOnlySet)
	assert.Equal(t, "Negative", env.NotifyOnly)
	assert.Equal(t, "cargo-mommy", env.Replacement)
	assert.Equal(t, "/usr/bin/cargo", env.ToolLocation)
	assert.True(t, env.Silence)
	assert.True(t, env.RecursionGuard)
	assert.Equal(t, "/sounds", env.Responses)
	assert.Equal(t, "01HZZZZZZZZZZZZZZZZZZZZZZZ", env.RunID)
	assert.Equal(t, "debug", env.LogLevel)
	assert.Equal(t, "/etc/clicker.toml", env.ConfigPath)
}

func TestReadEnv_NotifyOnlyEmptyValueIsSet(t *testing.T) {
	env := ReadEnv(lookupFrom(map[string]string{NotifyOnlyVar: ""}))
	assert.True(t, env.NotifyOnlySet)
	assert.Empty(t, env.NotifyOnly)
}

func TestReadEnv_DefaultsToProcessEnvironment(t *testing.T) {
	t.Setenv(SilenceVar, "yes")
	t.Setenv(ReplacementVar, "my-tool")

	env := ReadEnv(nil)
	assert.True(t, env.Silence)
	assert.Equal(t, "my-tool", env.Delegate(DefaultCommand))
}

func TestEnv_Delegate(t *testing.T) {
	tests := []struct {
		name     string
		env      Env
		fallback string
		expected string
	}{
		{"replacement wins", Env{Replacement: "a", ToolLocation: "b"}, "c", "a"},
		{"tool location next", Env{ToolLocation: "b"}, "c", "b"},
		{"fallback", Env{}, "c", "c"},
		{"hardcoded default", Env{}, "", "cargo"},
		{"empty replacement ignored", Env{Replacement: "", ToolLocation: "b"}, "c", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.env.Delegate(tt.fallback))
		})
	}
}

func TestEnv_Silenced(t *testing.T) {
	assert.False(t, Env{}.Silenced())
	assert.True(t, Env{Silence: true}.Silenced())
	assert.True(t, Env{RecursionGuard: true}.Silenced())
	assert.True(t, Env{Silence: true, RecursionGuard: true}.Silenced())
}
