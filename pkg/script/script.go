// SPDX-License-Identifier: MPL-2.0

// Package script defines Script, the four-port contract (stdin sink,
// stdout/stderr streams, exit outcome) that every runnable unit in
// scriptcore — subprocess, capture block, transformer, pipeline stage,
// buffered wrapper — is reduced to.
package script

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scriptcore/internal/streamio"
)

// Script is a running or finished unit of work exposing the four-port
// contract. It is constructed by New from a Factory and is safe to share
// across goroutines: Stdout/Stderr/Stdin/Wait/Kill may all be called
// concurrently, though each of Stdout's and Stderr's underlying Streams
// still admits only a single subscriber.
type Script struct {
	// ID correlates a Script's log lines across goroutines. It carries
	// no meaning beyond that: two Scripts are never compared or ordered
	// by ID, so it takes no part in any invariant.
	ID uuid.UUID

	name string

	stdin  *streamio.Sink
	stdout *streamio.Stream
	stderr *streamio.Stream
	kill   KillFunc

	state stateBox
	exit  *DelayedOneShot[Outcome]
}

// New runs factory and wraps its Components into a Script named name. ctx
// governs the factory call itself and is threaded through to the
// grace-window logic so a Script constructed inside a capture block can
// find its enclosing Ambient.
//
// If factory returns an error, New synthesizes closed ports and an
// Outcome of ExitSpawnFailed wrapping the error — callers never have to
// special-case a Script that failed to start.
func New(ctx context.Context, name string, factory Factory) *Script {
	s := &Script{
		ID:   uuid.New(),
		name: name,
		exit: NewDelayedOneShot[Outcome](),
	}
	s.state.set(Spawning)
	go func() {
		<-s.exit.Ready()
		s.state.set(Done)
	}()

	logger := LoggerFrom(ctx).With("script", name, "id", s.ID)
	logger.Debug("constructing")

	if ambient := AmbientFrom(ctx); ambient != nil && ambient.Closed() {
		logger.Debug("ambient capture already closed")
		return s.fail(name, &CaptureClosedError{Name: ambient.Name()})
	}

	comps, err := factory(ctx)
	if err != nil {
		logger.Debug("factory failed", "error", err)
		return s.fail(name, &SpawnFailedError{Name: name, Err: err})
	}

	s.stdin = comps.Stdin
	s.stdout = comps.Stdout
	s.stderr = comps.Stderr
	s.kill = comps.Kill
	s.state.set(Running)

	if ambient := AmbientFrom(ctx); ambient != nil {
		ambient.Register(s)
		logger.Trace("registered with ambient capture", "capture", ambient.Name())
	}

	go s.run(ctx, comps.Exit)
	// The grace window is scheduled from construction, not from exit: a
	// still-running Script whose output nobody has subscribed to must get
	// attached to ambient stdio before its bounded stream buffer fills and
	// blocks the producer forever.
	go s.watchGrace(ctx)
	return s
}

func (s *Script) fail(name string, err error) *Script {
	s.stdin = closedSink(name)
	s.stdout = closedStream(name + ".stdout")
	s.stderr = closedStream(name + ".stderr")
	s.state.set(Errored)
	code := ExitSpawnFailed
	if _, ok := err.(*CaptureClosedError); ok {
		code = ExitUnhandled
	}
	s.exit.Complete(Outcome{Code: code, Err: err})
	s.exit.Release()
	return s
}

func (s *Script) run(ctx context.Context, exitCh <-chan Outcome) {
	outcome, ok := <-exitCh
	if !ok {
		outcome = Outcome{Code: ExitUnhandled, Err: &UnhandledError{Name: s.name, Err: fmt.Errorf("exit channel closed without a value")}}
	}
	if outcome.Err == nil && !outcome.Code.Success() {
		outcome.Err = &ScriptFailed{Name: s.name, ExitCode: outcome.Code}
	}
	if outcome.Err != nil {
		s.state.set(Errored)
	} else {
		s.state.set(Exiting)
	}
	LoggerFrom(ctx).With("script", s.name, "id", s.ID).Debug("exited", "code", outcome.Code, "error", outcome.Err)
	s.exit.Complete(outcome)
}

// watchGrace runs independently of run: it gives stdout/stderr graceWindow
// to find a real subscriber, attaches whichever one still has none to
// ambient stdio (or the host process's own), and only then releases exit
// for dispatch — so Wait/Done still observe both the outcome and the
// grace window having elapsed, regardless of which settles first.
func (s *Script) watchGrace(ctx context.Context) {
	awaitGraceWindow(s.stdout, s.stderr)
	attachUnconsumed(ctx, s.name, s.stdout, s.stderr)
	s.exit.Release()
}

// Name returns the diagnostic name the Script was constructed with.
func (s *Script) Name() string { return s.name }

// Stdin returns the Script's writable input port.
func (s *Script) Stdin() *streamio.Sink { return s.stdin }

// Stdout returns the Script's single-consumer output port.
func (s *Script) Stdout() *streamio.Stream { return s.stdout }

// Stderr returns the Script's single-consumer error port.
func (s *Script) Stderr() *streamio.Stream { return s.stderr }

// State reports the Script's current lifecycle position.
func (s *Script) State() State {
	select {
	case <-s.exit.Ready():
		return Done
	default:
		return s.state.get()
	}
}

// Wait blocks until the Script's exit outcome has resolved and its grace
// window has elapsed, then returns the Outcome. A non-success Code always
// carries a non-nil Err: a *ScriptFailed for a bare native exit or signal,
// or whatever more specific error the Script's Factory already attached.
func (s *Script) Wait() Outcome {
	<-s.exit.Ready()
	return s.exit.Value()
}

// Done returns a channel that closes once Wait would return immediately.
func (s *Script) Done() <-chan struct{} { return s.exit.Ready() }

// Success reports whether the Script's Outcome was a clean, errorless
// ExitOK. Callers that care about the exact code should use Wait instead.
func (s *Script) Success() bool {
	o := s.Wait()
	return o.Err == nil && o.Code.Success()
}

func closedSink(name string) *streamio.Sink {
	sink := streamio.NewSink(name+".stdin", 0)
	sink.Close()
	return sink
}

func closedStream(name string) *streamio.Stream {
	st := streamio.NewStream(name, 1)
	st.Close()
	return st
}
