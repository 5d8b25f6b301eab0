// SPDX-License-Identifier: MPL-2.0

// Package spawn is the process-spawn primitive: it starts a subprocess
// and exposes it as a script.Factory, so pkg/script never imports
// os/exec directly. The executable is started directly, with no shell in
// between; working directory, environment construction, and
// exec.ExitError -> exit code mapping follow the same shape as a typical
// native-runtime executor.
package spawn
