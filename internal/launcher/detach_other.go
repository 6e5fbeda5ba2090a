//go:build !unix

package launcher

import "os/exec"

func detach(cmd *exec.Cmd) {}
