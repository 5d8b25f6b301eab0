// SPDX-License-Identifier: MPL-2.0

// Package xargs runs a callback over a sequence of items in
// fixed-size batches, sequentially, aborting on the first failing batch.
// It is built directly on pkg/capture so a failing batch maps onto the
// same UnhandledInCapture/257 exit the rest of scriptcore uses for an
// in-process callback error.
package xargs
