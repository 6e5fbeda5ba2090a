//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package wrapper

import (
	"os"

	"golang.org/x/sys/unix"
)

// inForegroundGroup reports whether this process's group is the foreground
// group of its controlling terminal. Without a terminal it returns false.
func inForegroundGroup() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		pgrp, err := unix.IoctlGetInt(int(f.Fd()), unix.TIOCGPGRP)
		if err != nil {
			continue
		}
		return pgrp == unix.Getpgrp()
	}
	return false
}
