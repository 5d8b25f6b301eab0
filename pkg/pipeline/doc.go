// SPDX-License-Identifier: MPL-2.0

// Package pipeline composes an ordered sequence of Scripts end-to-end:
// the stdout of each item feeds the stdin of the next, the composite
// behaves as a single Script with pipefail-style exit-code semantics,
// and a kill signal is offered to each component in turn.
package pipeline
