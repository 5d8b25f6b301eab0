// SPDX-License-Identifier: MPL-2.0

// Package streamio provides the low-level event plumbing shared by every
// public scriptcore component: a tagged Data/Error/Close Event, a
// single-subscriber broadcast Stream, and a many-writer Sink.
//
// Nothing here is part of the public contract described in the root
// package docs; pkg/script, pkg/stdio, pkg/entangled, pkg/capture,
// pkg/transform, pkg/pipeline and pkg/buffered all build their own typed
// surfaces on top of these primitives, the way invowk's internal/runtime
// package builds Runtime implementations on top of plain os/exec calls.
package streamio
