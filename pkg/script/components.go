// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"os"

	"scriptcore/internal/streamio"
)

// Outcome is the single value a Script's Exit channel ever carries.
// Code is always set; Err is non-nil only when the termination itself
// represents a scriptcore-level failure (spawn failure, unhandled
// exception, a child's ScriptFailed bubbling out of a capture) rather
// than an ordinary native exit status.
type Outcome struct {
	Code ExitCode
	Err  error
}

// KillFunc delivers a signal to a Script's underlying implementation.
// It returns false if the Script has already exited or declines the
// signal. A nil KillFunc is equivalent to one that always returns false.
type KillFunc func(signal os.Signal) bool

// Components are the four raw ports produced by a Factory: a write-only
// stdin sink, single-consumer stdout/stderr streams, and a channel that
// yields the Script's Outcome exactly once.
// Kill is optional; see KillFunc.
type Components struct {
	Stdin  *streamio.Sink
	Stdout *streamio.Stream
	Stderr *streamio.Stream
	Exit   <-chan Outcome
	Kill   KillFunc
}

// Factory is the late-binding constructor every Script variant shares
// (spawn, capture, transformer, pipeline all produce one). A Factory is
// expected to return quickly — it wires up ports and launches whatever
// background work produces Exit, but does not block waiting for that
// work to finish. An error return means the Script never had working
// ports at all; New synthesizes already-closed ports and an Outcome of
// ExitSpawnFailed.
type Factory func(ctx context.Context) (Components, error)
