package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete an entity everywhere",
	Long: `Remove deletes the category, section or article addressed by a
root-relative path, depth first, from the translation store, the remote
help center and the local tree, in that order. An interrupted removal
is safe to re-run.

The path is validated before any network call:

  helpsync remove billing
  helpsync remove billing/invoices
  helpsync remove billing/invoices/how-to-pay`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(true)
		if err != nil {
			fail(err)
		}
		entity, err := engine.LoadPath(args[0])
		if err != nil {
			fail(err)
		}
		if err := engine.Remove(entity); err != nil {
			fail(err)
		}
		fmt.Printf("%s Removed %s %q\n", ui.RenderPass("✓"), entity.Kind(), entity.DisplayName())
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
