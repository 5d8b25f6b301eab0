// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/stdio"
)

// fakeAmbient is a minimal Ambient for tests that need attachUnconsumed to
// have somewhere to go besides the host process's real stdout/stderr.
type fakeAmbient struct {
	stdout *stdio.Group
	stderr *stdio.Group
}

func newFakeAmbient(name string) *fakeAmbient {
	return &fakeAmbient{stdout: stdio.New(name + ".stdout"), stderr: stdio.New(name + ".stderr")}
}

func (a *fakeAmbient) Register(*Script)     {}
func (a *fakeAmbient) Stdout() *stdio.Group { return a.stdout }
func (a *fakeAmbient) Stderr() *stdio.Group { return a.stderr }
func (a *fakeAmbient) Closed() bool         { return false }
func (a *fakeAmbient) Name() string         { return "fake" }

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

func TestNewRunsFactoryAndResolvesOutcome(t *testing.T) {
	t.Parallel()

	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("echo.stdin", 1)
		stdout := streamio.NewStream("echo.stdout", 4)
		stderr := streamio.NewStream("echo.stderr", 4)
		exit := make(chan Outcome, 1)

		go func() {
			stdout.Publish(streamio.DataEvent([]byte("hi")))
			stdout.Close()
			stderr.Close()
			exit <- Outcome{Code: ExitOK}
		}()

		return Components{Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit}, nil
	}

	s := New(context.Background(), "echo", factory)

	if got := drainStream(t, s.Stdout()); got != "hi" {
		t.Errorf("stdout = %q, want %q", got, "hi")
	}

	outcome := s.Wait()
	if outcome.Code != ExitOK || outcome.Err != nil {
		t.Errorf("Wait() = %+v, want ExitOK with no error", outcome)
	}
	if !s.Success() {
		t.Error("Success() = false, want true")
	}
	if s.State() != Done {
		t.Errorf("State() = %v, want Done", s.State())
	}
}

func TestNewSynthesizesSpawnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("no such binary")
	factory := func(ctx context.Context) (Components, error) {
		return Components{}, boom
	}

	s := New(context.Background(), "missing", factory)

	outcome := s.Wait()
	if outcome.Code != ExitSpawnFailed {
		t.Errorf("Code = %v, want ExitSpawnFailed", outcome.Code)
	}
	if !errors.Is(outcome.Err, boom) {
		t.Errorf("Err = %v, want wrapping %v", outcome.Err, boom)
	}
	if s.Success() {
		t.Error("Success() = true, want false")
	}

	if s.Stdin().IsClosed() == false {
		t.Error("synthesized Stdin is not closed")
	}
	if s.Stdout().IsConsumed() || s.Stderr().IsConsumed() {
		t.Error("synthesized streams should start unconsumed")
	}
}

func TestNewDerivesScriptFailedFromBareNonZeroExit(t *testing.T) {
	t.Parallel()

	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("false.stdin", 0)
		stdin.Close()
		stdout := streamio.NewStream("false.stdout", 1)
		stderr := streamio.NewStream("false.stderr", 1)
		stdout.Close()
		stderr.Close()
		exit := make(chan Outcome, 1)
		exit <- Outcome{Code: ExitCode(7)}

		return Components{Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit}, nil
	}

	s := New(context.Background(), "false", factory)

	outcome := s.Wait()
	if outcome.Code != ExitCode(7) {
		t.Errorf("Code = %v, want 7", outcome.Code)
	}
	var failed *ScriptFailed
	if !errors.As(outcome.Err, &failed) {
		t.Fatalf("Err = %v, want *ScriptFailed", outcome.Err)
	}
	if failed.Name != "false" || failed.ExitCode != ExitCode(7) {
		t.Errorf("ScriptFailed = %+v, want {Name: false, ExitCode: 7}", failed)
	}
	if !errors.Is(outcome.Err, ErrScriptFailed) {
		t.Error("errors.Is(outcome.Err, ErrScriptFailed) = false, want true")
	}
	if s.Success() {
		t.Error("Success() = true, want false")
	}
}

func TestNewDerivesScriptFailedFromSignalExit(t *testing.T) {
	t.Parallel()

	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("killed.stdin", 0)
		stdin.Close()
		stdout := streamio.NewStream("killed.stdout", 1)
		stderr := streamio.NewStream("killed.stderr", 1)
		stdout.Close()
		stderr.Close()
		exit := make(chan Outcome, 1)
		exit <- Outcome{Code: ExitCode(-15)}

		return Components{Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit}, nil
	}

	s := New(context.Background(), "killed", factory)

	outcome := s.Wait()
	var failed *ScriptFailed
	if !errors.As(outcome.Err, &failed) {
		t.Fatalf("Err = %v, want *ScriptFailed", outcome.Err)
	}
	if failed.ExitCode != ExitCode(-15) {
		t.Errorf("ScriptFailed.ExitCode = %v, want -15", failed.ExitCode)
	}
}

func TestGraceWindowUnblocksUnconsumedProducer(t *testing.T) {
	t.Parallel()

	ambient := newFakeAmbient("grace")
	exit := make(chan Outcome, 1)
	produced := make(chan struct{})

	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("grace.stdin", 0)
		stdin.Close()
		// Buffer depth 1: the second write blocks on Publish until a
		// consumer (here, the grace-window fallback) drains it.
		stdout := streamio.NewStream("grace.stdout", 1)
		stderr := streamio.NewStream("grace.stderr", 1)
		stderr.Close()

		go func() {
			for i := 0; i < 5; i++ {
				stdout.Publish(streamio.DataEvent([]byte("x")))
			}
			stdout.Close()
			close(produced)
		}()

		return Components{Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit}, nil
	}

	ctx := WithAmbient(context.Background(), ambient)
	s := New(ctx, "grace", factory)

	select {
	case <-produced:
	case <-time.After(time.Second):
		t.Fatal("producer never finished writing stdout: an unconsumed stream was not attached before its buffer filled")
	}

	exit <- Outcome{Code: ExitOK}
	if outcome := s.Wait(); outcome.Code != ExitOK {
		t.Errorf("Wait() = %+v, want ExitOK", outcome)
	}
}

func TestSubscribeAfterGraceWindowIsAlreadyConsumed(t *testing.T) {
	t.Parallel()

	ambient := newFakeAmbient("late")
	exit := make(chan Outcome, 1)

	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("late.stdin", 0)
		stdin.Close()
		stdout := streamio.NewStream("late.stdout", 1)
		stderr := streamio.NewStream("late.stderr", 1)
		stdout.Close()
		stderr.Close()

		return Components{Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit}, nil
	}

	ctx := WithAmbient(context.Background(), ambient)
	s := New(ctx, "late", factory)

	// The Script is still running (nothing has been sent on exit yet) —
	// only the grace window, not exit resolution, governs the attach.
	time.Sleep(2 * graceWindow)

	if _, err := s.Stdout().Subscribe(); !errors.Is(err, streamio.ErrAlreadyConsumed) {
		t.Errorf("Subscribe() after grace window error = %v, want ErrAlreadyConsumed", err)
	}

	exit <- Outcome{Code: ExitOK}
	s.Wait()
}

func TestKillDeclinesAfterDone(t *testing.T) {
	t.Parallel()

	killed := make(chan os.Signal, 1)
	factory := func(ctx context.Context) (Components, error) {
		stdin := streamio.NewSink("noop.stdin", 1)
		stdout := streamio.NewStream("noop.stdout", 1)
		stderr := streamio.NewStream("noop.stderr", 1)
		exit := make(chan Outcome, 1)
		stdout.Close()
		stderr.Close()
		exit <- Outcome{Code: ExitOK}

		return Components{
			Stdin: stdin, Stdout: stdout, Stderr: stderr, Exit: exit,
			Kill: func(sig os.Signal) bool {
				killed <- sig
				return true
			},
		}, nil
	}

	s := New(context.Background(), "noop", factory)
	s.Wait()

	if s.Kill(os.Interrupt) {
		t.Error("Kill() after Done = true, want false")
	}
	select {
	case <-killed:
		t.Error("underlying KillFunc was invoked after Done")
	default:
	}
}
