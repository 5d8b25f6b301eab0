// SPDX-License-Identifier: MPL-2.0

package buffered

import (
	"context"
	"io"
	"testing"

	"scriptcore/pkg/script"
)

func TestSilenceDrainsBothStreams(t *testing.T) {
	t.Parallel()

	s := Silence(context.Background(), "loud", func(ctx context.Context, _ io.Reader) error {
		ambient := script.AmbientFrom(ctx)
		ambient.Stdout().Writeln("hidden stdout")
		ambient.Stderr().Writeln("hidden stderr")
		return nil
	})

	outcome := s.Wait()
	if outcome.Code != script.ExitOK {
		t.Errorf("Code = %v, want ExitOK", outcome.Code)
	}
}

func TestSilenceStderrLeavesStdoutLive(t *testing.T) {
	t.Parallel()

	s := SilenceStderr(context.Background(), "half-loud", func(ctx context.Context, _ io.Reader) error {
		ambient := script.AmbientFrom(ctx)
		ambient.Stdout().Writeln("visible")
		ambient.Stderr().Writeln("hidden")
		return nil
	})

	ch, err := s.Stdout().Subscribe()
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
	if string(got) != "visible\n" {
		t.Errorf("stdout = %q, want %q", got, "visible\n")
	}
}
