// SPDX-License-Identifier: MPL-2.0

package streamio

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrAlreadyConsumed is the sentinel behind ConsumedError.
var ErrAlreadyConsumed = errors.New("already consumed")

// ConsumedError is returned by Stream.Subscribe when a stream has already
// been claimed, either by an explicit subscriber or by the grace-window
// fallback that attaches it to ambient stdio.
type ConsumedError struct {
	Name string
}

func (e *ConsumedError) Error() string {
	return fmt.Sprintf("%s: already consumed", e.Name)
}

func (e *ConsumedError) Unwrap() error { return ErrAlreadyConsumed }

// Stream is a single-subscriber broadcast of Events. Exactly one consumer
// may ever call Subscribe successfully; a second caller (explicit or the
// internal ambient-stdio fallback) observes ConsumedError.
//
// Stream has exactly one producer: the component that owns it publishes
// events serially via Publish/Close. Nothing in Stream itself enforces
// that — callers are expected to confine publishing to their owning
// goroutine, matching scriptcore's single-goroutine-owner model.
type Stream struct {
	name       string
	events     chan Event
	consumed   atomic.Bool
	subscribed chan struct{}
}

// NewStream creates a Stream with the given diagnostic name and channel
// buffer depth.
func NewStream(name string, buffer int) *Stream {
	return &Stream{name: name, events: make(chan Event, buffer), subscribed: make(chan struct{})}
}

// Name returns the stream's diagnostic label (e.g. "myscript.stdout").
func (s *Stream) Name() string { return s.name }

// Subscribe claims the stream for a single consumer and returns the event
// channel. Calling Subscribe more than once (from any caller, including
// scriptcore's own grace-window fallback) returns ConsumedError.
func (s *Stream) Subscribe() (<-chan Event, error) {
	if !s.consumed.CompareAndSwap(false, true) {
		return nil, &ConsumedError{Name: s.name}
	}
	close(s.subscribed)
	return s.events, nil
}

// Subscribed returns a channel that closes the moment Subscribe first
// succeeds, used by the grace-window timer to detect early consumption.
func (s *Stream) Subscribed() <-chan struct{} { return s.subscribed }

// IsConsumed reports whether Subscribe has already succeeded once.
func (s *Stream) IsConsumed() bool { return s.consumed.Load() }

// Publish emits the next event. Must only be called by the stream's owner.
func (s *Stream) Publish(ev Event) { s.events <- ev }

// Close publishes the terminal Close event.
func (s *Stream) Close() { s.events <- CloseEvent() }
