// SPDX-License-Identifier: MPL-2.0

// Package script implements the Script runtime: the uniform four-port
// unit (stdin, stdout, stderr, exit code) that unifies a running
// subprocess, an in-process capture callback, and a stream transformer
// behind one contract.
//
// A Script is never constructed directly; it is produced by a Factory
// (pkg/spawn for subprocesses, pkg/capture for capture blocks, pkg/transform
// for byte/line transformers, pkg/pipeline for composites) and wrapped by
// New, which enforces the grace-window, ambient-attachment, and
// done-resolves-after-exit invariants common to every variant.
package script
