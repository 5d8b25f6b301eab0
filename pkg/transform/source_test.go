// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"context"
	"os"
	"testing"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/script"
)

func drainStream(t *testing.T, s *streamio.Stream) string {
	t.Helper()
	ch, err := s.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	var got []byte
	for ev := range ch {
		if ev.IsTerminal() {
			break
		}
		got = append(got, ev.Data...)
	}
	return string(got)
}

func TestFromBytesRoundTripsThroughIdentity(t *testing.T) {
	t.Parallel()

	want := []byte("round trip me\n")
	source := FromBytes(context.Background(), "source", want)
	roundTripped := New(context.Background(), "identity", Identity)

	ch, err := source.Stdout().Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	go func() {
		for ev := range ch {
			if ev.IsTerminal() {
				roundTripped.Stdin().Close()
				return
			}
			roundTripped.Stdin().Write(ev.Data)
		}
	}()

	got := drainStream(t, roundTripped.Stdout())
	if got != string(want) {
		t.Errorf("round-tripped output = %q, want %q", got, string(want))
	}

	if outcome := source.Wait(); outcome.Code != script.ExitOK {
		t.Errorf("source Wait() = %+v, want ExitOK", outcome)
	}
	if outcome := roundTripped.Wait(); outcome.Code != script.ExitOK {
		t.Errorf("identity Wait() = %+v, want ExitOK", outcome)
	}
}

func TestFromBytesKillForcesSignaledExit(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	defer w.Close()

	s := FromReader(context.Background(), "slow-source", r)

	ch, err := s.Stdout().Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	go func() {
		for range ch {
		}
	}()

	if !s.Kill(os.Interrupt) {
		t.Fatal("Kill() = false, want true")
	}

	outcome := s.Wait()
	if outcome.Code != script.ExitSignaled {
		t.Errorf("Code = %v, want ExitSignaled", outcome.Code)
	}
}
