// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"scriptcore/pkg/script"
)

// LineFunc transforms one line of input (without its trailing newline)
// into zero or more output lines.
type LineFunc func(line string) ([]string, error)

// NewLines builds a Script on top of New that decodes stdin by lines and
// re-encodes fn's results with trailing newlines.
func NewLines(ctx context.Context, name string, fn LineFunc) *script.Script {
	return New(ctx, name, func(r io.Reader, w io.Writer) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			out, err := fn(scanner.Text())
			if err != nil {
				return err
			}
			for _, line := range out {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
		return scanner.Err()
	})
}

// NewLineMap builds a Script that maps fn over every input line,
// dropping a line when fn's second return is false. It is the per-line
// reduction of NewLines.
func NewLineMap(ctx context.Context, name string, fn func(line string) (string, bool)) *script.Script {
	return NewLines(ctx, name, func(line string) ([]string, error) {
		out, keep := fn(line)
		if !keep {
			return nil, nil
		}
		return []string{out}, nil
	})
}
