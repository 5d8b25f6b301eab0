// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"scriptcore/internal/streamio"
)

// streamWriter adapts a streamio.Stream's Publish into io.Writer, so a
// transformer writes its output the same way it would to any io.Writer.
type streamWriter struct {
	stream *streamio.Stream
}

func (w *streamWriter) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	w.stream.Publish(streamio.DataEvent(cp))
	return len(p), nil
}
