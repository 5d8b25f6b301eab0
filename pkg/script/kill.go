// SPDX-License-Identifier: MPL-2.0

package script

import "os"

// Kill forwards signal to the Script's underlying implementation, if it
// offers one. It returns false when the Script has no KillFunc, has
// already reached Done, or the implementation itself declines the
// signal (e.g. a native process that has already exited).
func (s *Script) Kill(signal os.Signal) bool {
	if s.kill == nil {
		return false
	}
	if s.State() == Done {
		return false
	}
	return s.kill(signal)
}
