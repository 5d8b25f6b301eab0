// SPDX-License-Identifier: MPL-2.0

// Package envoverlay is an environment-variable overlay: a scoped map
// with Windows-case-insensitive keys, a WithEnv scoping primitive, and
// nil-deletes-key semantics, generalized from a fixed-level precedence
// pipeline into a composable overlay chain.
package envoverlay
