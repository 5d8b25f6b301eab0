// SPDX-License-Identifier: MPL-2.0

package envoverlay

import "context"

type overlayKey struct{}

// WithEnv runs fn under a context carrying overlay layered as a Child of
// whatever Overlay is already installed (if any), then restores the
// outer context implicitly by simply not propagating the child overlay
// past fn's return — the same nested-scope discipline the ambient script
// context uses. includeParentEnv governs Environ0 calls made from within
// fn via FromContext(ctx).Environ0.
func WithEnv(ctx context.Context, overlay *Overlay, includeParentEnv bool, fn func(context.Context) error) error {
	scoped := overlay
	if parent := FromContext(ctx); parent != nil {
		child := parent.Child()
		child.mu.Lock()
		for k, e := range overlay.vars {
			child.vars[k] = e
		}
		child.mu.Unlock()
		scoped = child
	}
	scoped.includeParentEnv = includeParentEnv
	return fn(context.WithValue(ctx, overlayKey{}, scoped))
}

// FromContext returns the Overlay installed by the nearest enclosing
// WithEnv call, or nil if none is installed.
func FromContext(ctx context.Context) *Overlay {
	o, _ := ctx.Value(overlayKey{}).(*Overlay)
	return o
}
