// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"

	"scriptcore/pkg/stdio"
)

// Ambient is what a Script consults, via the context.Context it is
// constructed with, to satisfy the grace-window auto-attach and
// child-registration invariants. Capture blocks
// (pkg/capture) install an Ambient into the context passed to their
// callback; a Script built outside any capture sees none, and falls back
// to the host process's own stdio.
type Ambient interface {
	// Register records s as a child of the ambient capture, before s
	// enters its grace window.
	Register(s *Script)
	// Stdout and Stderr are the capture's merging multiplexers; an
	// unconsumed Script stream is attached to them when the grace
	// window elapses.
	Stdout() *stdio.Group
	Stderr() *stdio.Group
	// Closed reports whether the capture has already exited, in which
	// case registering a new Script must fail with CaptureClosedError.
	Closed() bool
	// Name identifies the enclosing capture for diagnostics.
	Name() string
}

type ambientKey struct{}

// WithAmbient returns a context carrying a, so Scripts constructed with
// it participate in a's capture.
func WithAmbient(ctx context.Context, a Ambient) context.Context {
	return context.WithValue(ctx, ambientKey{}, a)
}

// AmbientFrom extracts the Ambient installed by WithAmbient, if any.
func AmbientFrom(ctx context.Context) Ambient {
	a, _ := ctx.Value(ambientKey{}).(Ambient)
	return a
}
