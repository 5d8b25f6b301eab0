// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scriptcore/pkg/argtok"
	"scriptcore/pkg/pipeline"
	"scriptcore/pkg/script"
	"scriptcore/pkg/spawn"
	"scriptcore/pkg/wrapmain"
)

var pipeCmd = &cobra.Command{
	Use:   "pipe [command line] -- [command line] ...",
	Short: "Chain several subprocess Scripts into a pipeline, pipefail style",
	Long: SubtitleStyle.Render("Separate each stage with a bare '--'.") + `

Example:
  scriptdemo pipe echo hello -- tr a-z A-Z`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPipe,
}

func runPipe(cmd *cobra.Command, args []string) error {
	ctx := demoContext(cmd.Context())

	// Flag parsing drops the first bare "--" from args; put it back so it
	// still separates the first two stages.
	if dash := cmd.ArgsLenAtDash(); dash > 0 {
		args = append(append(append([]string{}, args[:dash]...), "--"), args[dash:]...)
	}

	stages := splitStages(args)
	if len(stages) == 0 {
		return fmt.Errorf("scriptdemo: no pipeline stages given")
	}

	items := make([]pipeline.Item, len(stages))
	for i, stage := range stages {
		exe, rest, err := argtok.Parse(strings.Join(stage, " "))
		if err != nil {
			return err
		}
		items[i] = pipeline.Of(script.New(ctx, exe, spawn.Command(exe, rest)))
	}

	p, err := pipeline.New(ctx, "scriptdemo-pipe", items...)
	if err != nil {
		return err
	}

	outDone := streamOut(cmd.OutOrStdout(), p.Stdout())
	errDone := streamOut(cmd.ErrOrStderr(), p.Stderr())
	<-outDone
	<-errDone

	outcome := p.Wait()
	if !outcome.Code.Success() {
		return &wrapmain.ExitError{Code: int(outcome.Code), Err: outcome.Err}
	}
	return nil
}

// splitStages breaks args into pipeline stages at each bare "--".
func splitStages(args []string) [][]string {
	var stages [][]string
	var current []string
	for _, a := range args {
		if a == "--" {
			if len(current) > 0 {
				stages = append(stages, current)
			}
			current = nil
			continue
		}
		current = append(current, a)
	}
	if len(current) > 0 {
		stages = append(stages, current)
	}
	return stages
}
