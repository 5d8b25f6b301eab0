// SPDX-License-Identifier: MPL-2.0

// Package linetransform supplies grep- and replace-style line
// transformers, built on
// pkg/transform's line-oriented Script wrapper. Matching is done with the
// standard library's regexp: none of the example repos pull in an
// alternate regular-expression engine, and regexp's RE2 semantics are
// exactly what a grep/sed-alike transformer needs, so there is no
// third-party library to reach for here (see DESIGN.md).
package linetransform
