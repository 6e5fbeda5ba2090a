//go:build unix

package launcher

import (
	"os/exec"
	"syscall"
)

// detach moves the child into its own process group so a Ctrl-C aimed at
// the build does not cut the response short.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
