// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"scriptcore/pkg/capture"
	"scriptcore/pkg/script"
	"scriptcore/pkg/spawn"
	"scriptcore/pkg/wrapmain"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Run an in-process capture block that spawns a couple of subprocess Scripts",
	Long: SubtitleStyle.Render("Demonstrates ambient stdio merging: the subprocesses' output") + "\n" +
		SubtitleStyle.Render("flows into the capture block's own stdout/stderr streams."),
	RunE: runCapture,
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx := demoContext(cmd.Context())

	block := capture.New(ctx, "scriptdemo-capture", func(ctx context.Context, _ io.Reader) error {
		greet := script.New(ctx, "greet", spawn.Command("echo", []string{"hello from a captured subprocess"}))
		if !greet.Success() {
			return fmt.Errorf("greet exited %s", greet.Wait().Code)
		}

		whoami := script.New(ctx, "whoami", spawn.Command("sh", []string{"-c", "echo captured-by $0"}))
		return nilIfSuccess(whoami)
	})

	outDone := streamOut(cmd.OutOrStdout(), block.Stdout())
	errDone := streamOut(cmd.ErrOrStderr(), block.Stderr())
	<-outDone
	<-errDone

	outcome := block.Wait()
	if !outcome.Code.Success() {
		return &wrapmain.ExitError{Code: int(outcome.Code), Err: outcome.Err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("capture finished"))
	return nil
}

func nilIfSuccess(s *script.Script) error {
	if s.Success() {
		return nil
	}
	return fmt.Errorf("%s exited %s", s.Name(), s.Wait().Code)
}
