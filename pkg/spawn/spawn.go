// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/envoverlay"
	"scriptcore/pkg/script"
)

// Option configures a Command factory.
type Option func(*settings)

type settings struct {
	dir     string
	env     []string
	overlay *envoverlay.Overlay
}

// WithDir sets the subprocess's working directory.
func WithDir(dir string) Option { return func(s *settings) { s.dir = dir } }

// WithEnv sets the subprocess's environment directly as "KEY=VALUE"
// pairs, bypassing envoverlay. A nil env means "inherit the host process
// environment unmodified" (os/exec's own default).
func WithEnv(env []string) Option { return func(s *settings) { s.env = env } }

// WithOverlay resolves the subprocess's environment from overlay at
// spawn time via Environ0.
func WithOverlay(overlay *envoverlay.Overlay) Option {
	return func(s *settings) { s.overlay = overlay }
}

// Command returns a script.Factory that spawns exe with args as a
// subprocess: resolve working directory, build the
// environment, wire stdio, run, and map exec's ExitError into a native
// ExitCode. A failure to start becomes ExitSpawnFailed via script.New's
// own factory-error handling — Command never needs to synthesize that
// itself.
func Command(exe string, args []string, opts ...Option) script.Factory {
	cfg := &settings{}
	for _, o := range opts {
		o(cfg)
	}

	return func(ctx context.Context) (script.Components, error) {
		name := exe
		stdin := streamio.NewSink(name+".stdin", 16)
		stdout := streamio.NewStream(name+".stdout", 16)
		stderr := streamio.NewStream(name+".stderr", 16)

		cmd := exec.CommandContext(ctx, exe, args...)
		if cfg.dir != "" {
			cmd.Dir = cfg.dir
		}
		switch {
		case cfg.overlay != nil:
			cmd.Env = cfg.overlay.Environ0()
		case cfg.env != nil:
			cmd.Env = cfg.env
		}

		stdinPipe, err := cmd.StdinPipe()
		if err != nil {
			return script.Components{}, fmt.Errorf("spawn %q: %w", exe, err)
		}
		stdoutPipe, err := cmd.StdoutPipe()
		if err != nil {
			return script.Components{}, fmt.Errorf("spawn %q: %w", exe, err)
		}
		stderrPipe, err := cmd.StderrPipe()
		if err != nil {
			return script.Components{}, fmt.Errorf("spawn %q: %w", exe, err)
		}

		if err := cmd.Start(); err != nil {
			return script.Components{}, fmt.Errorf("spawn %q: %w", exe, err)
		}

		go pumpSink(stdin, stdinPipe)

		var pumps sync.WaitGroup
		pumps.Add(2)
		go func() { defer pumps.Done(); pumpToStream(stdoutPipe, stdout) }()
		go func() { defer pumps.Done(); pumpToStream(stderrPipe, stderr) }()

		exit := make(chan script.Outcome, 1)
		go func() {
			pumps.Wait()
			exit <- outcomeFromWait(cmd)
		}()

		return script.Components{
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			Exit:   exit,
			Kill:   killFunc(cmd),
		}, nil
	}
}

func pumpSink(sink *streamio.Sink, w *os.File) {
	defer w.Close()
	for ev := range sink.Events() {
		if ev.Kind == streamio.Data {
			w.Write(ev.Data)
		}
	}
}

func pumpToStream(r *os.File, s *streamio.Stream) {
	defer s.Close()
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			s.Publish(streamio.DataEvent(cp))
		}
		if err != nil {
			return
		}
	}
}

func killFunc(cmd *exec.Cmd) script.KillFunc {
	return func(sig os.Signal) bool {
		if cmd.Process == nil {
			return false
		}
		return cmd.Process.Signal(sig) == nil
	}
}
