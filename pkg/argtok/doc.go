// SPDX-License-Identifier: MPL-2.0

// Package argtok is an argument-string tokenizer: it splits a command
// line into an executable and its argument tokens, honoring quote/escape
// rules, with optional glob expansion against a root directory. It is
// built on mvdan.cc/sh/v3's syntax and expand packages rather than a
// hand-rolled splitter, deliberately stopping short of
// mvdan.cc/sh/v3/interp: pkg/argtok only tokenizes and glob-expands, it
// never executes.
package argtok
