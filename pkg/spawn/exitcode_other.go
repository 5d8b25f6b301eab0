//go:build !unix

// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"os/exec"

	"scriptcore/pkg/script"
)

// signalExitCode has no signal-numbered equivalent on non-Unix hosts;
// callers fall back to ProcessState.ExitCode().
func signalExitCode(*exec.ExitError) (script.ExitCode, bool) { return 0, false }
