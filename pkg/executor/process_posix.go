//go:build unix

package executor

import (
	"os/exec"
	"syscall"
)

// setProcessGroup runs the command in its own process group so the whole
// process tree can be killed on cancellation.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// setProcessGroupKill replaces the default cancel behavior with a kill of
// the entire process group. Must be called before cmd.Start.
func setProcessGroupKill(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
