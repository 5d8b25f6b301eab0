// SPDX-License-Identifier: MPL-2.0

package buffered

import (
	"context"
	"sync"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/capture"
	"scriptcore/pkg/entangled"
	"scriptcore/pkg/script"
)

// Mode selects which of a Buffered Script's output ports are withheld
// until Release.
type Mode uint8

const (
	// ModeBoth withholds stdout and stderr together, preserving their
	// original cross-stream interleaving on Release.
	ModeBoth Mode = iota
	// ModeStderrOnly passes stdout through live and withholds only
	// stderr.
	ModeStderrOnly
)

// Buffered wraps a capture block so its output is withheld from any
// consumer until Release is called. Errors from the
// inner capture are not surfaced anywhere but Wait/Done — a caller decides
// later whether to Release or let the buffered output be discarded.
type Buffered struct {
	*script.Script

	mode Mode
	pair *entangled.Pair

	stdout *streamio.Stream
	stderr *streamio.Stream

	release sync.Once
}

// New runs fn as a capture named name whose stdout and stderr are both
// buffered until Release.
func New(ctx context.Context, name string, fn capture.Func, opts ...capture.Option) *Buffered {
	return newBuffered(ctx, name, ModeBoth, fn, opts...)
}

// NewStderrOnly runs fn as a capture whose stdout passes through live and
// whose stderr alone is buffered until Release.
func NewStderrOnly(ctx context.Context, name string, fn capture.Func, opts ...capture.Option) *Buffered {
	return newBuffered(ctx, name, ModeStderrOnly, fn, opts...)
}

func newBuffered(ctx context.Context, name string, mode Mode, fn capture.Func, opts ...capture.Option) *Buffered {
	inner := capture.New(ctx, name, fn, opts...)

	b := &Buffered{
		Script: inner,
		mode:   mode,
		pair:   entangled.New(name+".buffer.stdout", name+".buffer.stderr"),
		stderr: streamio.NewStream(name+".buffered.stderr", 16),
	}

	feed(inner.Stderr(), b.pair, entangled.ChannelB)

	if mode == ModeBoth {
		b.stdout = streamio.NewStream(name+".buffered.stdout", 16)
		feed(inner.Stdout(), b.pair, entangled.ChannelA)
	} else {
		b.stdout = inner.Stdout()
	}

	return b
}

// Stdout returns the port a consumer should subscribe to. Under ModeBoth
// it is silent until Release; under ModeStderrOnly it is the inner
// capture's own live stdout.
func (b *Buffered) Stdout() *streamio.Stream { return b.stdout }

// Stderr returns the buffered stderr port. It is always silent until
// Release, regardless of Mode.
func (b *Buffered) Stderr() *streamio.Stream { return b.stderr }

// Release flushes every event buffered so far, in its original
// cross-stream order, and lets subsequent events flow through live.
// Release is idempotent: only the first call has any effect.
func (b *Buffered) Release() {
	b.release.Do(func() {
		if b.mode == ModeBoth {
			relayFrom(b.pair.SubscribeA, b.stdout)
		}
		relayFrom(b.pair.SubscribeB, b.stderr)
	})
}

// feed subscribes to src and submits every event (including its terminal
// Close) into pair under label, so the pair's drain can later replay them
// in original submission order once a consumer subscribes.
func feed(src *streamio.Stream, pair *entangled.Pair, label entangled.Label) {
	ch, err := src.Subscribe()
	if err != nil {
		pair.Submit(label, streamio.CloseEvent())
		return
	}
	go func() {
		for ev := range ch {
			pair.Submit(label, ev)
			if ev.IsTerminal() {
				return
			}
		}
	}()
}

// relayFrom subscribes to one side of the pair and forwards everything it
// emits into target, in order, until the terminal event.
func relayFrom(subscribe func() (<-chan streamio.Event, error), target *streamio.Stream) {
	ch, err := subscribe()
	if err != nil {
		target.Close()
		return
	}
	go func() {
		for ev := range ch {
			target.Publish(ev)
			if ev.IsTerminal() {
				return
			}
		}
	}()
}
