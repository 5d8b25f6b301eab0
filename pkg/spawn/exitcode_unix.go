//go:build unix

// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"os/exec"
	"syscall"

	"scriptcore/pkg/script"
)

// signalExitCode reports the negative native signal number a process was
// killed with (ScriptFailed("cmd", -15) for SIGTERM). ok is false for an
// ordinary non-zero exit.
func signalExitCode(exitErr *exec.ExitError) (script.ExitCode, bool) {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return script.ExitCode(-int(ws.Signal())), true
}
