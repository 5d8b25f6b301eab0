// SPDX-License-Identifier: MPL-2.0

// Package entangled implements a dual-channel buffer: two sibling
// channels that share one insertion-ordered buffer until a consumer
// attaches to either side, after which
// buffered events drain one at a time so a subscriber that throws (or, in
// Go, panics or blocks) on one event cannot silently swallow the next.
//
// scriptcore's buffered Script (pkg/buffered) uses a Pair to hold back a
// capture block's stdout and stderr while preserving their relative
// submission order, even when the eventual stdout/stderr consumers attach
// after the capture has already produced output.
package entangled
