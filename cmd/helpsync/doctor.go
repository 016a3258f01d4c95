package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Reconcile local metadata against remote state",
	Long: `Doctor walks the local tree and repairs drift: stale remote ids
are cleared, records that moved on are re-adopted by name, duplicate
same-named remote records are resolved (interactively, or keeping the
most recently updated with --force), and lost translation-store file
ids are recovered. One entity's failure never stops its siblings.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(false)
		if err != nil {
			fail(err)
		}
		if err := engine.Doctor(); err != nil {
			fail(err)
		}
		fmt.Printf("%s Doctor complete\n", ui.RenderPass("✓"))
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
