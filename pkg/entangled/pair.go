// SPDX-License-Identifier: MPL-2.0

package entangled

import (
	"sync"

	"scriptcore/internal/streamio"
)

// Label identifies which of a Pair's two sibling channels an event
// belongs to.
type Label uint8

const (
	// ChannelA is the first sibling channel (conventionally stdout).
	ChannelA Label = iota
	// ChannelB is the second sibling channel (conventionally stderr).
	ChannelB
)

type labeledEvent struct {
	label Label
	event streamio.Event
}

// Pair is a dual-channel buffer with shared submission ordering.
// Submissions made before either channel is subscribed are queued in
// submission order; the first Subscribe call (on either channel) starts a
// drain that dispatches one queued event at a time, interleaving
// correctly with events submitted while the drain is still in flight.
type Pair struct {
	mu        sync.Mutex
	queue     []labeledEvent
	subscribed bool
	draining  bool

	chanA *streamio.Stream
	chanB *streamio.Stream
}

// New creates a Pair whose two channels are named for diagnostics.
func New(nameA, nameB string) *Pair {
	return &Pair{
		chanA: streamio.NewStream(nameA, 0),
		chanB: streamio.NewStream(nameB, 0),
	}
}

// Submit enqueues ev under the given label. Before any subscription,
// submissions accumulate in the shared buffer; afterward they still pass
// through the buffer so ordering against any event still mid-drain is
// preserved, but the drain goroutine (already running) picks them up
// immediately once it catches up.
func (p *Pair) Submit(label Label, ev streamio.Event) {
	p.mu.Lock()
	p.queue = append(p.queue, labeledEvent{label: label, event: ev})
	if p.subscribed {
		p.ensureDrainLocked()
	}
	p.mu.Unlock()
}

// SubscribeA claims channel A's consumer slot and returns its events.
func (p *Pair) SubscribeA() (<-chan streamio.Event, error) { return p.subscribe(ChannelA) }

// SubscribeB claims channel B's consumer slot and returns its events.
func (p *Pair) SubscribeB() (<-chan streamio.Event, error) { return p.subscribe(ChannelB) }

func (p *Pair) subscribe(label Label) (<-chan streamio.Event, error) {
	target := p.chanA
	if label == ChannelB {
		target = p.chanB
	}

	ch, err := target.Subscribe()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.subscribed = true
	p.ensureDrainLocked()
	p.mu.Unlock()

	return ch, nil
}

// ensureDrainLocked starts the drain goroutine if the queue is non-empty
// and no drain is already running. Callers must hold p.mu.
func (p *Pair) ensureDrainLocked() {
	if p.draining || len(p.queue) == 0 {
		return
	}
	p.draining = true
	go p.drain()
}

// drain dispatches queued events one at a time. Each dispatch blocks until
// its consumer (if one exists) receives it, giving every event a chance
// to be fully handled before the next is emitted — the Go analog of the
// source design's one-event-per-microtask discipline.
func (p *Pair) drain() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.draining = false
			p.mu.Unlock()
			return
		}
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		switch next.label {
		case ChannelA:
			p.chanA.Publish(next.event)
		case ChannelB:
			p.chanB.Publish(next.event)
		}
	}
}
