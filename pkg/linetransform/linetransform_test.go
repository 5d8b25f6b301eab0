// SPDX-License-Identifier: MPL-2.0

package linetransform

import (
	"context"
	"regexp"
	"testing"

	"scriptcore/internal/streamio"
)

func collectLines(t *testing.T, ch <-chan streamio.Event) []byte {
	t.Helper()
	var got []byte
	for ev := range ch {
		if ev.IsTerminal() {
			break
		}
		got = append(got, ev.Data...)
	}
	return got
}

func TestGrepKeepsMatchingLines(t *testing.T) {
	t.Parallel()

	s := Grep(context.Background(), "grep", regexp.MustCompile(`^a`))
	ch, err := s.Stdout().Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	sink := s.Stdin()
	sink.Write([]byte("apple\nbanana\navocado\n"))
	sink.Close()

	got := collectLines(t, ch)
	if string(got) != "apple\navocado\n" {
		t.Errorf("stdout = %q, want %q", got, "apple\navocado\n")
	}
}

func TestGrepInvertDropsMatchingLines(t *testing.T) {
	t.Parallel()

	s := GrepInvert(context.Background(), "grep-v", regexp.MustCompile(`^a`))
	ch, err := s.Stdout().Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	sink := s.Stdin()
	sink.Write([]byte("apple\nbanana\navocado\n"))
	sink.Close()

	got := collectLines(t, ch)
	if string(got) != "banana\n" {
		t.Errorf("stdout = %q, want %q", got, "banana\n")
	}
}

func TestReplaceSubstitutesMatches(t *testing.T) {
	t.Parallel()

	s := Replace(context.Background(), "sed", regexp.MustCompile(`o`), "0")
	ch, err := s.Stdout().Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	sink := s.Stdin()
	sink.Write([]byte("foo bar\nboom\n"))
	sink.Close()

	got := collectLines(t, ch)
	if string(got) != "f00 bar\nb00m\n" {
		t.Errorf("stdout = %q, want %q", got, "f00 bar\nb00m\n")
	}
}
