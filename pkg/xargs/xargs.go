// SPDX-License-Identifier: MPL-2.0

package xargs

import (
	"context"
	"io"

	"scriptcore/pkg/capture"
	"scriptcore/pkg/script"
)

// Func is the batch callback xargs invokes. A non-nil error aborts the
// run: no further batch is started.
type Func[T any] func(batch []T) error

// New runs cb sequentially over items in batches of at most maxArgs,
// wrapped as a Script. A non-positive maxArgs runs every item in a
// single batch. The first failing cb call aborts the run with exit
// ExitUnhandled (257) and no further cb call is made.
func New[T any](ctx context.Context, name string, items []T, maxArgs int, cb Func[T]) *script.Script {
	if maxArgs <= 0 {
		maxArgs = len(items)
	}
	return capture.New(ctx, name, func(ctx context.Context, _ io.Reader) error {
		for start := 0; start < len(items); start += maxArgs {
			end := start + maxArgs
			if end > len(items) {
				end = len(items)
			}
			if err := cb(items[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}
