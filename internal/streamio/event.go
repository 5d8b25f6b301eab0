// SPDX-License-Identifier: MPL-2.0

package streamio

// Kind tags an Event as carrying data, an error, or a terminal close.
type Kind uint8

const (
	// Data carries a chunk of bytes.
	Data Kind = iota
	// Error carries a production error. Production errors never reach a
	// stream's consumer directly; callers route them into a Script's exit
	// path instead (see pkg/script).
	Error
	// Close is the terminal event; no further events follow it on a
	// well-behaved Stream or Sink.
	Close
)

// Event is the single unit that flows through every Sink, Stream, Group
// and Pair in scriptcore.
type Event struct {
	Kind Kind
	Data []byte
	Err  error
}

// DataEvent wraps a byte chunk. The slice is not copied; callers that
// reuse their buffer after calling DataEvent must copy first.
func DataEvent(b []byte) Event { return Event{Kind: Data, Data: b} }

// ErrorEvent wraps a production error.
func ErrorEvent(err error) Event { return Event{Kind: Error, Err: err} }

// CloseEvent returns the terminal event.
func CloseEvent() Event { return Event{Kind: Close} }

// IsTerminal reports whether the event ends a stream.
func (e Event) IsTerminal() bool { return e.Kind == Close }
