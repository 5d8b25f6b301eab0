// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"os/exec"

	"scriptcore/pkg/script"
)

// outcomeFromWait maps cmd.Wait's result onto scriptcore's exit-code
// sentinels: a clean exit function of ProcessState.ExitCode(), a negative
// native signal number when the process was killed (see exitcode_unix.go),
// and ExitUnhandled for anything Wait itself couldn't classify.
func outcomeFromWait(cmd *exec.Cmd) script.Outcome {
	err := cmd.Wait()
	if err == nil {
		return script.Outcome{Code: script.ExitOK}
	}

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return script.Outcome{
			Code: script.ExitUnhandled,
			Err:  &script.UnhandledError{Name: cmd.Path, Err: err},
		}
	}

	if sig, killed := signalExitCode(exitErr); killed {
		return script.Outcome{Code: sig}
	}

	return script.Outcome{Code: script.ExitCode(exitErr.ExitCode())}
}
