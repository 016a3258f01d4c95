package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Push local content to the remote help center",
	Long: `Export reconciles local metadata against remote state (see
'helpsync doctor'), then pushes the local tree: entities without a
remote id are created, and each locale translation is created or
updated when its content changed. An unchanged tree pushes nothing.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(false)
		if err != nil {
			fail(err)
		}
		if err := engine.Export(); err != nil {
			fail(err)
		}
		fmt.Printf("%s Export complete\n", ui.RenderPass("✓"))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
