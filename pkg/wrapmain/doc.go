// SPDX-License-Identifier: MPL-2.0

// Package wrapmain is scriptcore's top-level error-to-exit-code
// boundary: a program built on scriptcore runs its real work inside a
// function that returns an error, and hands
// that error to Run, which formats it to stderr and produces the process
// exit code main should pass to os.Exit — without ever calling os.Exit
// itself, so callers stay testable.
package wrapmain
