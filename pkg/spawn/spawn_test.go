// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"context"
	"errors"
	"testing"

	"scriptcore/pkg/script"
)

func TestCommandCapturesStdout(t *testing.T) {
	t.Parallel()

	s := script.New(context.Background(), "echo", Command("sh", []string{"-c", "echo hi"}))

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
	if string(got) != "hi\n" {
		t.Errorf("stdout = %q, want %q", got, "hi\n")
	}

	outcome := s.Wait()
	if outcome.Code != script.ExitOK {
		t.Errorf("Code = %v, want ExitOK", outcome.Code)
	}
}

func TestCommandNonZeroExit(t *testing.T) {
	t.Parallel()

	s := script.New(context.Background(), "false", Command("sh", []string{"-c", "exit 7"}))

	outcome := s.Wait()
	if outcome.Code != 7 {
		t.Errorf("Code = %v, want 7", outcome.Code)
	}
	var failed *script.ScriptFailed
	if !errors.As(outcome.Err, &failed) {
		t.Fatalf("Err = %v, want *script.ScriptFailed", outcome.Err)
	}
	if failed.ExitCode != 7 {
		t.Errorf("ScriptFailed.ExitCode = %v, want 7", failed.ExitCode)
	}
}

func TestCommandMissingBinaryIsSpawnFailure(t *testing.T) {
	t.Parallel()

	s := script.New(context.Background(), "missing", Command("scriptcore-definitely-not-a-real-binary", nil))

	outcome := s.Wait()
	if outcome.Code != script.ExitSpawnFailed {
		t.Errorf("Code = %v, want ExitSpawnFailed", outcome.Code)
	}
}
