// SPDX-License-Identifier: MPL-2.0

package script

import (
	"bytes"
	"io"
	"strings"

	"scriptcore/internal/streamio"
)

// Text subscribes to stream, decodes everything it emits as UTF-8, and
// trims a single trailing newline. It blocks until stream's terminal
// event arrives.
func Text(stream *streamio.Stream) (string, error) {
	ch, err := stream.Subscribe()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for ev := range ch {
		if ev.IsTerminal() {
			break
		}
		buf.Write(ev.Data)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// PipeTo subscribes to stream and copies every chunk it emits into w,
// the counterpart to piping a Script's stdout into another Script
// (pkg/pipeline) when the downstream side is an arbitrary io.Writer
// instead. It returns once stream's terminal event arrives or a Write
// to w fails.
func PipeTo(stream *streamio.Stream, w io.Writer) error {
	ch, err := stream.Subscribe()
	if err != nil {
		return err
	}
	for ev := range ch {
		if ev.IsTerminal() {
			return nil
		}
		if _, err := w.Write(ev.Data); err != nil {
			return err
		}
	}
	return nil
}
