// SPDX-License-Identifier: MPL-2.0

// Package transform wraps byte and line transformers as Scripts:
// stdin flows through a user function and out the stdout stream, with
// stderr always empty and a signal-triggered closer forcing exit 143
// when killed mid-transform.
package transform
