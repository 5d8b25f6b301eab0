// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/script"
)

// New resolves items into Scripts and composes them end-to-end: item i's
// stdout feeds item i+1's stdin. An empty items
// list is InvalidInputError; a single item is returned unchanged rather
// than wrapped in a trivial one-stage composite.
func New(ctx context.Context, name string, items ...Item) (*script.Script, error) {
	if len(items) == 0 {
		return nil, &script.InvalidInputError{Reason: "pipeline requires at least one item"}
	}

	scripts := make([]*script.Script, len(items))
	for i, it := range items {
		scripts[i] = it.resolve(ctx, i)
	}
	if len(scripts) == 1 {
		return scripts[0], nil
	}

	for i := 0; i < len(scripts)-1; i++ {
		wire(scripts[i], scripts[i+1])
	}

	last := scripts[len(scripts)-1]
	factory := func(context.Context) (script.Components, error) {
		exit := make(chan script.Outcome, 1)
		go func() { exit <- pipefail(scripts) }()

		return script.Components{
			Stdin:  scripts[0].Stdin(),
			Stdout: last.Stdout(),
			Stderr: last.Stderr(),
			Exit:   exit,
			Kill:   killEach(scripts),
		}, nil
	}

	return script.New(ctx, name, factory), nil
}

// wire copies src's stdout into dst's stdin, closing dst's stdin once src's
// stdout reaches its terminal event. Intermediate stderrs are deliberately
// left unconsumed here — the grace-window/attach-to-ambient
// fallback is what routes them onward, exactly as a lone Script's would.
func wire(src, dst *script.Script) {
	ch, err := src.Stdout().Subscribe()
	if err != nil {
		dst.Stdin().Close()
		return
	}
	go func() {
		defer dst.Stdin().Close()
		for ev := range ch {
			switch ev.Kind {
			case streamio.Data:
				dst.Stdin().Write(ev.Data)
			case streamio.Close:
				return
			}
		}
	}()
}

// pipefail waits for every component and returns the last (rightmost)
// non-zero Outcome, or a clean Outcome if all components exited zero —
// shell pipefail semantics.
func pipefail(scripts []*script.Script) script.Outcome {
	outcomes := make([]script.Outcome, len(scripts))

	var g errgroup.Group
	for i, s := range scripts {
		i, s := i, s
		g.Go(func() error {
			outcomes[i] = s.Wait()
			return nil
		})
	}
	_ = g.Wait()

	for i := len(outcomes) - 1; i >= 0; i-- {
		if outcomes[i].Code != script.ExitOK {
			return outcomes[i]
		}
	}
	return script.Outcome{Code: script.ExitOK}
}

// killEach offers a signal to each component in order, short-circuiting on
// the first that accepts it.
func killEach(scripts []*script.Script) script.KillFunc {
	return func(sig os.Signal) bool {
		for _, s := range scripts {
			if s.Kill(sig) {
				return true
			}
		}
		return false
	}
}
