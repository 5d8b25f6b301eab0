// SPDX-License-Identifier: MPL-2.0

package capture

import (
	"context"
	"errors"
	"fmt"
	"io"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/script"
)

// Func is the body of a capture block. It receives a context carrying the
// capture's Ambient, so any script.New call made with that context (or a
// derivative of it) becomes a tracked child whose output merges into the
// capture's own stdout/stderr, plus stdin: whatever the caller writes to
// the capture Script's own Stdin handle.
type Func func(ctx context.Context, stdin io.Reader) error

// Option configures a capture block constructed by New.
type Option func(*settings)

type settings struct {
	onSignal script.KillFunc
}

// WithSignalHandler installs a KillFunc invoked when the returned
// Script's Kill is called. Without one, the capture declines every
// signal, matching a plain in-process function that has no subprocess to
// forward to.
func WithSignalHandler(h script.KillFunc) Option {
	return func(s *settings) { s.onSignal = h }
}

// New runs fn as an in-process capture block named name, returning the
// Script that represents it. fn's error becomes ExitUnhandled wrapping an
// UnhandledError; a panic inside fn is recovered the same way. fn's
// completion is not enough on its own to finish the Script — New also
// waits for every child Script fn registered through its ambient context
// to reach Done. If fn itself returned nil but any registered child
// exited non-zero, that child's failure becomes the capture's own outcome
// instead of ExitOK, whether or not fn observed the child's outcome.
func New(ctx context.Context, name string, fn Func, opts ...Option) *script.Script {
	cfg := &settings{}
	for _, opt := range opts {
		opt(cfg)
	}

	capCtx := newContext(name)

	factory := func(ctx context.Context) (script.Components, error) {
		stdin := streamio.NewSink(name+".stdin", 16)

		exit := make(chan script.Outcome, 1)
		innerCtx := script.WithAmbient(ctx, capCtx)
		reader := streamio.NewSinkReader(innerCtx, stdin)

		go func() {
			exit <- runCapture(innerCtx, name, fn, reader, stdin, capCtx)
		}()

		var kill script.KillFunc
		if cfg.onSignal != nil {
			kill = cfg.onSignal
		}

		return script.Components{
			Stdin:  stdin,
			Stdout: capCtx.stdout.Stream(),
			Stderr: capCtx.stderr.Stream(),
			Exit:   exit,
			Kill:   kill,
		}, nil
	}

	return script.New(ctx, name, factory)
}

func runCapture(ctx context.Context, name string, fn Func, stdin io.Reader, sink *streamio.Sink, capCtx *Context) (outcome script.Outcome) {
	logger := script.LoggerFrom(ctx).With("capture", name)
	defer func() {
		if r := recover(); r != nil {
			outcome = script.Outcome{
				Code: script.ExitUnhandled,
				Err:  &script.UnhandledError{Name: name, Err: fmt.Errorf("panic: %v", r)},
			}
		}
		logger.Trace("waiting for children to idle")
		if err := capCtx.Idle(); err != nil && outcome.Err == nil {
			outcome = script.Outcome{Code: childFailureCode(err), Err: err}
		}
		capCtx.close()
		capCtx.stdout.Close()
		capCtx.stderr.Close()
		// The caller's stdin handle stays open for the whole callback,
		// whether or not fn ever reads from it; it closes only once the
		// capture itself exits.
		sink.Close()
	}()

	if err := fn(ctx, stdin); err != nil {
		return script.Outcome{
			Code: script.ExitUnhandled,
			Err:  &script.UnhandledError{Name: name, Err: err},
		}
	}
	return script.Outcome{Code: script.ExitOK}
}

// childFailureCode recovers the exit code an unhandled child failure
// should surface as, falling back to ExitUnhandled for anything that
// isn't a *script.ScriptFailed.
func childFailureCode(err error) script.ExitCode {
	var failed *script.ScriptFailed
	if errors.As(err, &failed) {
		return failed.ExitCode
	}
	return script.ExitUnhandled
}
