package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Pull the remote help center into the local tree",
	Long: `Import walks the remote help center and writes every category,
section and article into the local tree. Article bodies are converted
from HTML to the local markup format.

Import does not consult existing local state; same-named local entries
are overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(false)
		if err != nil {
			fail(err)
		}
		if err := engine.Import(); err != nil {
			fail(err)
		}
		fmt.Printf("%s Import complete\n", ui.RenderPass("✓"))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
