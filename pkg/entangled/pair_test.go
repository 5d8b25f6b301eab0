// SPDX-License-Identifier: MPL-2.0

package entangled

import (
	"testing"

	"scriptcore/internal/streamio"
)

func collect(t *testing.T, ch <-chan streamio.Event) []string {
	t.Helper()
	var out []string
	for ev := range ch {
		if ev.IsTerminal() {
			return out
		}
		out = append(out, string(ev.Data))
	}
	return out
}

func TestPairPreservesOrderAcrossLateSubscription(t *testing.T) {
	t.Parallel()

	p := New("a", "b")

	// Submissions before any subscription: interleaved across channels.
	p.Submit(ChannelA, streamio.DataEvent([]byte("a1")))
	p.Submit(ChannelB, streamio.DataEvent([]byte("b1")))
	p.Submit(ChannelA, streamio.DataEvent([]byte("a2")))
	p.Submit(ChannelA, streamio.CloseEvent())
	p.Submit(ChannelB, streamio.CloseEvent())

	chA, err := p.SubscribeA()
	if err != nil {
		t.Fatalf("SubscribeA() error = %v", err)
	}
	chB, err := p.SubscribeB()
	if err != nil {
		t.Fatalf("SubscribeB() error = %v", err)
	}

	done := make(chan struct{})
	var gotA []string
	go func() {
		gotA = collect(t, chA)
		close(done)
	}()
	gotB := collect(t, chB)
	<-done

	if len(gotA) != 2 || gotA[0] != "a1" || gotA[1] != "a2" {
		t.Errorf("channel A sequence = %v, want [a1 a2]", gotA)
	}
	if len(gotB) != 1 || gotB[0] != "b1" {
		t.Errorf("channel B sequence = %v, want [b1]", gotB)
	}
}

func TestPairSecondSubscribeFails(t *testing.T) {
	t.Parallel()

	p := New("a", "b")
	if _, err := p.SubscribeA(); err != nil {
		t.Fatalf("first SubscribeA() error = %v", err)
	}
	if _, err := p.SubscribeA(); err == nil {
		t.Fatal("second SubscribeA() error = nil, want ConsumedError")
	}
}
