// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"scriptcore/internal/streamio"
	"scriptcore/pkg/argtok"
	"scriptcore/pkg/script"
	"scriptcore/pkg/spawn"
	"scriptcore/pkg/wrapmain"
)

var runCmd = &cobra.Command{
	Use:   "run [command line]",
	Short: "Run a single subprocess Script and stream its output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := demoContext(cmd.Context())

	exe, rest, err := argtok.Parse(strings.Join(args, " "), argtok.WithGlobRoot("."))
	if err != nil {
		return err
	}

	s := script.New(ctx, exe, spawn.Command(exe, rest))

	outDone := streamOut(cmd.OutOrStdout(), s.Stdout())
	errDone := streamOut(cmd.ErrOrStderr(), s.Stderr())
	<-outDone
	<-errDone

	outcome := s.Wait()
	if !outcome.Code.Success() {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(fmt.Sprintf("exit %s", outcome.Code)))
		return &wrapmain.ExitError{Code: int(outcome.Code), Err: outcome.Err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("ok"))
	return nil
}

// streamOut drains a Script output port into w in the background,
// returning a channel that closes once PipeTo returns.
func streamOut(w io.Writer, stream *streamio.Stream) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		script.PipeTo(stream, w)
	}()
	return done
}

func demoContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})
	return script.WithLogger(ctx, logger)
}
