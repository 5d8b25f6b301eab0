// SPDX-License-Identifier: MPL-2.0

// Package buffered implements the buffered Script and its silencing
// variants: a capture block whose stdout/stderr are withheld — via an
// entangled.Pair — from any consumer until Release is
// called, at which point buffered events replay in their original
// cross-stream order and further events flow through live.
package buffered
