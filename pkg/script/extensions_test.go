// SPDX-License-Identifier: MPL-2.0

package script

import (
	"bytes"
	"testing"

	"scriptcore/internal/streamio"
)

func TestTextTrimsSingleTrailingNewline(t *testing.T) {
	t.Parallel()

	stream := streamio.NewStream("text", 4)
	stream.Publish(streamio.DataEvent([]byte("hello\n")))
	stream.Close()

	got, err := Text(stream)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}
}

func TestTextLeavesOtherContentAlone(t *testing.T) {
	t.Parallel()

	stream := streamio.NewStream("text", 4)
	stream.Publish(streamio.DataEvent([]byte("no newline")))
	stream.Close()

	got, err := Text(stream)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != "no newline" {
		t.Errorf("Text() = %q, want %q", got, "no newline")
	}
}

func TestPipeToCopiesEveryChunk(t *testing.T) {
	t.Parallel()

	stream := streamio.NewStream("pipeto", 4)
	stream.Publish(streamio.DataEvent([]byte("foo")))
	stream.Publish(streamio.DataEvent([]byte("bar")))
	stream.Close()

	var buf bytes.Buffer
	if err := PipeTo(stream, &buf); err != nil {
		t.Fatalf("PipeTo() error = %v", err)
	}
	if buf.String() != "foobar" {
		t.Errorf("buf = %q, want %q", buf.String(), "foobar")
	}
}
