// SPDX-License-Identifier: MPL-2.0

// Package stdio implements a merging multiplexer that combines an
// unbounded set of dynamically added child byte streams with a single
// writable sink into one broadcast output.
//
// A Group is created once per capture block for stdout and once for
// stderr (see pkg/capture); Scripts created inside the capture whose
// stdout/stderr go unconsumed during their grace window (see pkg/script)
// are added as children so their output still reaches the capture's own
// caller.
package stdio
