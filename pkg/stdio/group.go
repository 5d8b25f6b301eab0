// SPDX-License-Identifier: MPL-2.0

package stdio

import (
	"errors"
	"fmt"
	"sync"

	"scriptcore/internal/streamio"
)

// ErrClosed is returned by Add once the group has closed.
var ErrClosed = errors.New("stdio group closed")

// ErrSinkClosed is returned by the group's Sink.Write after Sink.Close.
var ErrSinkClosed = errors.New("stdio group sink closed")

// Group merges child byte streams and a writable sink into one output.
type Group struct {
	name string

	mu         sync.Mutex
	closed     bool
	sinkClosed bool
	forwarders sync.WaitGroup

	merged chan streamio.Event
	out    *streamio.Stream
}

// New creates an empty Group. name is used only for diagnostics.
func New(name string) *Group {
	g := &Group{
		name:   name,
		merged: make(chan streamio.Event, 64),
		out:    streamio.NewStream(name, 0),
	}
	go g.pump()
	return g
}

func (g *Group) pump() {
	for ev := range g.merged {
		if ev.IsTerminal() {
			g.out.Close()
			return
		}
		g.out.Publish(ev)
	}
}

// Add attaches a new child stream; its data is merged into the group's
// output in the order it arrives. Returns ErrClosed if the group has
// already closed.
func (g *Group) Add(child *streamio.Stream) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return fmt.Errorf("%s: %w", g.name, ErrClosed)
	}
	g.mu.Unlock()

	ch, err := child.Subscribe()
	if err != nil {
		return err
	}

	g.forwarders.Add(1)
	go func() {
		defer g.forwarders.Done()
		for ev := range ch {
			if ev.IsTerminal() {
				return
			}
			g.merged <- ev
		}
	}()
	return nil
}

// Sink returns the group's write handle. Closing the sink stops accepting
// writes through it but never closes the group itself — Writeln keeps
// working, and Add can still attach new children.
func (g *Group) Sink() *Sink { return &Sink{group: g} }

// Writeln writes fmt.Sprintf("%v", v)+"\n" directly into the merged
// output. Unlike writes through Sink, Writeln always succeeds as long as
// the group itself has not closed — even if the sink has been closed, or
// a concurrent Add is mid-subscribe.
func (g *Group) Writeln(v any) {
	line := fmt.Sprintf("%v\n", v)
	g.mu.Lock()
	closed := g.closed
	g.mu.Unlock()
	if closed {
		return
	}
	g.merged <- streamio.DataEvent([]byte(line))
}

// Stream returns the single-consumer merged output stream.
func (g *Group) Stream() *streamio.Stream { return g.out }

// IsClosed reports whether Close has already run.
func (g *Group) IsClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Close closes the sink and seals the multiplexer's output. It blocks
// until every child attached via Add has reached its own terminal event
// and forwarded all of its data into the merge, so a child that finished
// just before Close is never
// truncated by a Close event racing ahead of its last bytes. Close is
// idempotent.
func (g *Group) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.sinkClosed = true
	g.mu.Unlock()

	g.forwarders.Wait()
	g.merged <- streamio.CloseEvent()
}

// Sink is the write-only handle returned by Group.Sink.
type Sink struct {
	group *Group
}

// Write enqueues p into the group's merged output in submission order.
func (s *Sink) Write(p []byte) (int, error) {
	s.group.mu.Lock()
	closed := s.group.sinkClosed || s.group.closed
	s.group.mu.Unlock()
	if closed {
		return 0, fmt.Errorf("%s: %w", s.group.name, ErrSinkClosed)
	}

	cp := make([]byte, len(p))
	copy(cp, p)
	s.group.merged <- streamio.DataEvent(cp)
	return len(p), nil
}

// Close marks the sink closed without closing the owning group.
func (s *Sink) Close() error {
	s.group.mu.Lock()
	s.group.sinkClosed = true
	s.group.mu.Unlock()
	return nil
}
