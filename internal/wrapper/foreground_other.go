//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package wrapper

func inForegroundGroup() bool { return false }
