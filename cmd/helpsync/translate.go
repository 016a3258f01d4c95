package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Register untracked content with the translation store",
	Long: `Translate uploads every content file that has no translation-store
file id yet: group content files, article content files and article
bodies. The assigned ids are persisted to local meta files, one upload
at a time.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(true)
		if err != nil {
			fail(err)
		}
		if err := engine.Translate(); err != nil {
			fail(err)
		}
		fmt.Printf("%s Translate complete\n", ui.RenderPass("✓"))
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
}
