// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"context"
	"fmt"
	"io"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/script"
)

// ByteFunc is a byte-level transformer: read everything from r, write the
// transformed result to w, return any error that should fail the Script.
type ByteFunc func(r io.Reader, w io.Writer) error

// New wraps fn as a Script named name. stdin feeds r; whatever fn writes
// to w becomes stdout; stderr is always empty.
// Killing the returned Script cancels fn's read side and forces the exit
// code to script.ExitSignaled regardless of what fn itself returns.
func New(ctx context.Context, name string, fn ByteFunc) *script.Script {
	return script.New(ctx, name, func(ctx context.Context) (script.Components, error) {
		stdin := streamio.NewSink(name+".stdin", 16)
		stdout := streamio.NewStream(name+".stdout", 16)
		stderr := streamio.NewStream(name+".stderr", 0)
		stderr.Close()

		readCtx, cancel := context.WithCancel(ctx)
		signaled := make(chan struct{}, 1)

		exit := make(chan script.Outcome, 1)
		go func() {
			defer stdout.Close()

			reader := streamio.NewSinkReader(readCtx, stdin)
			writer := &streamWriter{stream: stdout}

			err := fn(reader, writer)

			select {
			case <-signaled:
				exit <- script.Outcome{Code: script.ExitSignaled}
			default:
				if err != nil {
					exit <- script.Outcome{
						Code: script.ExitUnhandled,
						Err:  &script.UnhandledError{Name: name, Err: fmt.Errorf("transform: %w", err)},
					}
				} else {
					exit <- script.Outcome{Code: script.ExitOK}
				}
			}
		}()

		return script.Components{
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			Exit:   exit,
			Kill:   killFunc(cancel, signaled),
		}, nil
	})
}
