// SPDX-License-Identifier: MPL-2.0

package streamio

import (
	"context"
	"io"
)

// SinkReader adapts a Sink's event feed to io.Reader, so code written
// against the standard library can consume a Script's stdin (or a
// capture block's) without knowing about Events.
type SinkReader struct {
	ctx  context.Context
	sink *Sink
	buf  []byte
}

// NewSinkReader wraps sink as an io.Reader. ctx.Done cancels an
// in-flight Read with ctx.Err, matching the owning Script's signal
// handling.
func NewSinkReader(ctx context.Context, sink *Sink) *SinkReader {
	return &SinkReader{ctx: ctx, sink: sink}
}

func (r *SinkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		case ev, ok := <-r.sink.Events():
			if !ok {
				if err := r.sink.Err(); err != nil {
					return 0, err
				}
				return 0, io.EOF
			}
			if ev.Kind == Data {
				r.buf = ev.Data
			}
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
