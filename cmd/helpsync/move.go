package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var moveCmd = &cobra.Command{
	Use:   "move <source> <destination>",
	Short: "Relocate a section or article under a new parent",
	Long: `Move relocates an article under another section, or a section
under another category. All per-locale files move with it, the remote
parent link is re-pointed and the translation store's file paths are
re-indexed. Remote ids never change on a move.

Both paths are root-relative and validated before any network call:

  helpsync move billing/invoices/how-to-pay billing/receipts
  helpsync move billing/invoices accounts`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(true)
		if err != nil {
			fail(err)
		}
		entity, err := engine.LoadPath(args[0])
		if err != nil {
			fail(err)
		}
		dest, err := engine.LoadPath(args[1])
		if err != nil {
			fail(err)
		}
		if err := engine.Move(entity, dest); err != nil {
			fail(err)
		}
		fmt.Printf("%s Moved %s %q under %q\n", ui.RenderPass("✓"), entity.Kind(), entity.DisplayName(), dest.DisplayName())
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
