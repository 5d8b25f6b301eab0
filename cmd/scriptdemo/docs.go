// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Render scriptdemo's long-form help as Markdown",
	RunE:  runDocs,
}

const docsMarkdown = `# scriptdemo

scriptdemo composes three scriptcore packages into a runnable CLI:

- ` + "`run`" + ` spawns a single subprocess Script and streams its ports.
- ` + "`pipe`" + ` chains several subprocess Scripts, pipefail style.
- ` + "`capture`" + ` runs an in-process capture block that spawns its own children.

Every subcommand's exit code is the Script's own exit code, per
scriptcore's sentinel set: ` + "`0`, `1..255`, `143`, `256`, `257`" + `.
`

func runDocs(cmd *cobra.Command, args []string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("scriptdemo: build renderer: %w", err)
	}

	out, err := renderer.Render(docsMarkdown)
	if err != nil {
		return fmt.Errorf("scriptdemo: render docs: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
