// SPDX-License-Identifier: MPL-2.0

package buffered

import (
	"context"
	"io"
	"testing"
	"time"

	"scriptcore/pkg/script"
)

func drainAll(b *Buffered) chan string {
	out := make(chan string, 1)
	ch, err := b.Stdout().Subscribe()
	if err != nil {
		out <- ""
		return out
	}
	go func() {
		var buf []byte
		for ev := range ch {
			if ev.IsTerminal() {
				break
			}
			buf = append(buf, ev.Data...)
		}
		out <- string(buf)
	}()
	return out
}

func TestBufferedWithholdsUntilRelease(t *testing.T) {
	t.Parallel()

	b := New(context.Background(), "printer", func(ctx context.Context, _ io.Reader) error {
		ambient := script.AmbientFrom(ctx)
		ambient.Stdout().Writeln("a")
		ambient.Stdout().Writeln("b")
		ambient.Stdout().Writeln("c")
		return nil
	})

	got := drainAll(b)

	select {
	case out := <-got:
		t.Fatalf("stdout arrived before Release(): %q", out)
	case <-time.After(50 * time.Millisecond):
	}

	b.Wait()
	b.Release()

	select {
	case out := <-got:
		if out != "a\nb\nc\n" {
			t.Errorf("stdout after Release() = %q, want %q", out, "a\nb\nc\n")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for buffered stdout after Release()")
	}
}

func TestBufferedReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	b := New(context.Background(), "noop", func(ctx context.Context, _ io.Reader) error {
		return nil
	})
	b.Wait()

	b.Release()
	b.Release()
}

func TestSilenceUntilFailureFlushesOnError(t *testing.T) {
	t.Parallel()

	b := SilenceUntilFailure(context.Background(), "flaky", func(ctx context.Context, _ io.Reader) error {
		ambient := script.AmbientFrom(ctx)
		ambient.Stdout().Writeln("about to fail")
		return errFailingCallback
	})

	got := drainAll(b)

	select {
	case out := <-got:
		if out != "about to fail\n" {
			t.Errorf("stdout after failure = %q, want %q", out, "about to fail\n")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for auto-released stdout")
	}

	if b.Wait().Err == nil {
		t.Error("Wait().Err = nil, want the callback's error")
	}
}

var errFailingCallback = errTestSentinel("boom")

type errTestSentinel string

func (e errTestSentinel) Error() string { return string(e) }
