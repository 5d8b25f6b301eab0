// SPDX-License-Identifier: MPL-2.0

package buffered

import (
	"context"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/capture"
	"scriptcore/pkg/script"
)

// Silence runs fn as a capture whose stdout and stderr are both drained
// to nowhere.
func Silence(ctx context.Context, name string, fn capture.Func, opts ...capture.Option) *script.Script {
	inner := capture.New(ctx, name, fn, opts...)
	discard(inner.Stdout())
	discard(inner.Stderr())
	return inner
}

// SilenceStderr runs fn as a capture whose stderr alone is drained to
// nowhere; stdout passes through live.
func SilenceStderr(ctx context.Context, name string, fn capture.Func, opts ...capture.Option) *script.Script {
	inner := capture.New(ctx, name, fn, opts...)
	discard(inner.Stderr())
	return inner
}

// SilenceUntilFailure runs fn under a Buffered capture that stays silent
// as long as fn succeeds, but releases everything buffered so far — in
// original cross-stream order — the moment fn's callback errors, then lets
// the error propagate through Wait/Done as usual.
func SilenceUntilFailure(ctx context.Context, name string, fn capture.Func, opts ...capture.Option) *Buffered {
	b := New(ctx, name, fn, opts...)
	go func() {
		outcome := b.Wait()
		if outcome.Err != nil {
			b.Release()
		}
	}()
	return b
}

func discard(s *streamio.Stream) {
	ch, err := s.Subscribe()
	if err != nil {
		return
	}
	go func() {
		for range ch {
		}
	}()
}
