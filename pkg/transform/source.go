// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"bytes"
	"context"
	"io"

	"scriptcore/pkg/script"
)

// FromBytes returns a Script whose stdout emits b verbatim then exits,
// ignoring whatever is written to its stdin. Piping FromBytes(b) into
// Identity yields b back unchanged, with exit 0 on normal completion and
// 143 if killed mid-copy, exactly like any other transformer Script.
func FromBytes(ctx context.Context, name string, b []byte) *script.Script {
	return FromReader(ctx, name, bytes.NewReader(b))
}

// FromReader generalizes FromBytes to an arbitrary io.Reader source.
func FromReader(ctx context.Context, name string, r io.Reader) *script.Script {
	return New(ctx, name, func(in io.Reader, w io.Writer) error {
		copied := make(chan error, 1)
		go func() { _, err := io.Copy(w, r); copied <- err }()
		// Stdin is discarded; reading it fails once the Script is killed,
		// which ends the copy early instead of waiting on r.
		stdinErr := make(chan error, 1)
		go func() { _, err := io.Copy(io.Discard, in); stdinErr <- err }()
		select {
		case err := <-copied:
			return err
		case err := <-stdinErr:
			if err == nil {
				return <-copied
			}
			return err
		}
	})
}

// Identity copies its input to its output unchanged, the trivial
// ByteFunc used to round-trip a FromBytes/FromReader source.
func Identity(r io.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}
