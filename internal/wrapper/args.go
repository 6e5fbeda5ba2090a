package wrapper

import (
	"slices"
	"strings"
)

// StripSelfArgs drops argv[0] and then every leading repetition of alias,
// so both `cargo-clicker build` and `cargo clicker clicker build` forward
// just `build`. Stripping stops at the first token that is not alias.
func StripSelfArgs(argv []string, alias string) []string {
	if len(argv) == 0 {
		return []string{}
	}

	args := argv[1:]
	for alias != "" && len(args) > 0 && args[0] == alias {
		args = args[1:]
	}
	return slices.Clone(args)
}

// IsQuiet reports whether args ask the delegate to be quiet, via --quiet or
// a short flag cluster containing q. Scanning stops at a bare --.
func IsQuiet(args []string) bool {
	for _, arg := range args {
		switch {
		case arg == "--":
			return false
		case arg == "--quiet":
			return true
		case strings.HasPrefix(arg, "--"):
			// Other long flags never mean quiet.
		case strings.HasPrefix(arg, "-") && strings.ContainsRune(arg[1:], 'q'):
			return true
		}
	}
	return false
}
