// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// discardLogger is what every Script logs through when its context
// carries no logger at all, so the core never logs unconditionally by
// default.
var discardLogger = log.NewWithOptions(io.Discard, log.Options{})

// WithLogger returns a context carrying l, the same *log.Logger type the
// teacher's internal/sshserver.Server constructs via
// log.NewWithOptions(os.Stderr, ...). Every Script built from that
// context, and every nested capture it opens, logs through l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom extracts the logger installed by WithLogger, or a discard
// logger when none was installed.
func LoggerFrom(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && l != nil {
		return l
	}
	return discardLogger
}
