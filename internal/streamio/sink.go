// SPDX-License-Identifier: MPL-2.0

package streamio

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrSinkClosed is returned by Sink.Write after the sink has closed.
var ErrSinkClosed = errors.New("sink closed")

// Sink is a write-only destination for byte chunks, used as a Script's
// stdin and as the building block for ambient stdio groups. A Sink
// rejects error events: WriteErr closes the sink immediately and stores
// the error for retrieval via Err, rather than forwarding it as Data.
type Sink struct {
	name    string
	events  chan Event
	closed  atomic.Bool
	err     atomic.Value
	done    chan struct{}
}

// NewSink creates a Sink with the given diagnostic name and channel
// buffer depth.
func NewSink(name string, buffer int) *Sink {
	return &Sink{name: name, events: make(chan Event, buffer), done: make(chan struct{})}
}

// Write implements io.Writer, copying p and enqueuing it as a Data event.
func (s *Sink) Write(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, fmt.Errorf("%s: %w", s.name, ErrSinkClosed)
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.events <- DataEvent(cp)
	return len(p), nil
}

// WriteErr rejects an error onto the sink: the sink closes immediately
// and the error becomes observable through Err/Done rather than flowing
// through Events as data.
func (s *Sink) WriteErr(err error) {
	if s.closed.CompareAndSwap(false, true) {
		s.err.Store(err)
		close(s.events)
		close(s.done)
	}
}

// Close closes the sink without an error.
func (s *Sink) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.events)
		close(s.done)
	}
	return nil
}

// Events returns the channel of enqueued Data events. Closed when the
// sink closes (with or without error).
func (s *Sink) Events() <-chan Event { return s.events }

// Done resolves once the sink has closed.
func (s *Sink) Done() <-chan struct{} { return s.done }

// Err returns the error passed to WriteErr, if any.
func (s *Sink) Err() error {
	if v := s.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

// IsClosed reports whether the sink has closed.
func (s *Sink) IsClosed() bool { return s.closed.Load() }
