//go:build windows

package executor

import "os/exec"

// Process groups are a Unix concept; on Windows the default
// exec.CommandContext kill behavior applies.
func setProcessGroup(_ *exec.Cmd) {}

func setProcessGroupKill(_ *exec.Cmd) {}
