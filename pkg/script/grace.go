// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"os"
	"time"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/stdio"
)

// graceWindow is the macrotask-equivalent delay a Script's output streams
// get to find a real consumer before scriptcore attaches them to ambient
// stdio (or the host process's own stdio) on the caller's behalf. It is a
// short, fixed window, not a deadline computed from anything observable.
const graceWindow = 50 * time.Millisecond

// awaitGraceWindow blocks until either both stdout and stderr have been
// explicitly subscribed, or graceWindow has elapsed, whichever is sooner.
// It never blocks longer than graceWindow.
func awaitGraceWindow(stdout, stderr *streamio.Stream) {
	bothSubscribed := make(chan struct{})
	go func() {
		<-stdout.Subscribed()
		<-stderr.Subscribed()
		close(bothSubscribed)
	}()

	select {
	case <-bothSubscribed:
	case <-time.After(graceWindow):
	}
}

// attachUnconsumed gives any stream that still has no subscriber at the
// end of the grace window somewhere to go: the ambient capture's merging
// group if one is present and still open, otherwise the host process's
// own stdout/stderr. Either way the stream stops holding a buffered
// producer hostage.
func attachUnconsumed(ctx context.Context, name string, stdout, stderr *streamio.Stream) {
	ambient := AmbientFrom(ctx)

	attach := func(s *streamio.Stream, group *stdio.Group, fallback *os.File) {
		if s.IsConsumed() {
			return
		}
		if group != nil && !group.IsClosed() {
			if err := group.Add(s); err == nil {
				return
			}
		}
		attachToFile(s, fallback)
	}

	var outGroup, errGroup *stdio.Group
	if ambient != nil && !ambient.Closed() {
		outGroup, errGroup = ambient.Stdout(), ambient.Stderr()
	}

	attach(stdout, outGroup, os.Stdout)
	attach(stderr, errGroup, os.Stderr)
}

// attachToFile drains a stream directly into f, discarding the terminal
// event, as the last-resort consumer when no ambient group claimed it.
func attachToFile(s *streamio.Stream, f *os.File) {
	ch, err := s.Subscribe()
	if err != nil {
		return
	}
	go func() {
		for ev := range ch {
			switch ev.Kind {
			case streamio.Data:
				f.Write(ev.Data)
			case streamio.Close:
				return
			}
		}
	}()
}
