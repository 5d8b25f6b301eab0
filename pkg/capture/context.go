// SPDX-License-Identifier: MPL-2.0

package capture

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"scriptcore/pkg/script"
	"scriptcore/pkg/stdio"
)

// Context is the script.Ambient a capture block installs into the
// context.Context it hands its callback. Every Script constructed with
// that context registers itself here, and Context tracks how many such
// children are still running so the capture can delay its own exit until
// they have all settled.
type Context struct {
	name string

	stdout *stdio.Group
	stderr *stdio.Group

	closed atomic.Bool

	mu       sync.Mutex
	children []*script.Script
	pending  errgroup.Group
}

// newContext creates a Context named name with fresh merging groups for
// stdout and stderr.
func newContext(name string) *Context {
	return &Context{
		name:   name,
		stdout: stdio.New(name + ".stdout"),
		stderr: stdio.New(name + ".stderr"),
	}
}

// Register implements script.Ambient. It tracks s until s reaches Done,
// so Idle can block on every outstanding child at once and report the
// first one that failed.
func (c *Context) Register(s *script.Script) {
	c.mu.Lock()
	c.children = append(c.children, s)
	c.mu.Unlock()

	c.pending.Go(func() error {
		outcome := s.Wait()
		if outcome.Code.Success() {
			return nil
		}
		if outcome.Err != nil {
			return outcome.Err
		}
		return &script.ScriptFailed{Name: s.Name(), ExitCode: outcome.Code}
	})
}

// Stdout implements script.Ambient.
func (c *Context) Stdout() *stdio.Group { return c.stdout }

// Stderr implements script.Ambient.
func (c *Context) Stderr() *stdio.Group { return c.stderr }

// Closed implements script.Ambient.
func (c *Context) Closed() bool { return c.closed.Load() }

// Name implements script.Ambient.
func (c *Context) Name() string { return c.name }

// Idle blocks until every Script registered so far has reached Done,
// returning the first child's failure if any child did not exit
// successfully. A child registered after Idle has already observed an
// empty child set returns immediately for that call, matching a plain
// wait group's semantics: callers that need every child accounted for
// must stop spawning new ones before calling Idle.
func (c *Context) Idle() error { return c.pending.Wait() }

// Children returns a snapshot of every Script registered so far.
func (c *Context) Children() []*script.Script {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*script.Script, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Context) close() { c.closed.Store(true) }
