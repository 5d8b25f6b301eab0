// SPDX-License-Identifier: MPL-2.0

// Package main is scriptdemo, a small example program that composes
// scriptcore's pkg/script, pkg/pipeline, and pkg/capture into a runnable
// CLI — not part of the library's own public surface.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"scriptcore/pkg/wrapmain"
)

var (
	verbose bool
	cfgFile string
	demoCfg demoConfig
	rootCmd = &cobra.Command{
		Use:   "scriptdemo",
		Short: "A worked example of the scriptcore library",
		Long: TitleStyle.Render("scriptdemo") + SubtitleStyle.Render(" - runs, pipes, and captures Scripts") + `

scriptdemo wires scriptcore's Script/Pipeline/Capture contract into a
small CLI: one subcommand runs a single subprocess Script, another
chains several into a pipeline, and a third shows a capture block
collecting in-process work alongside a subprocess's output.`,
	}
)

func init() {
	cobra.OnInitialize(initDemoConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug/trace) logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./scriptdemo.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pipeCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(docsCmd)
}

func initDemoConfig() {
	cfg, err := loadDemoConfig(cfgFile)
	if err != nil {
		cobra.CheckErr(err)
	}
	demoCfg = cfg
	if !verbose {
		verbose = demoCfg.Verbose
	}
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion("dev"),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *wrapmain.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
