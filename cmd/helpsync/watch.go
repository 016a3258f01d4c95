package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helpscribe/helpsync/internal/ui"
	"github.com/helpscribe/helpsync/internal/watch"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run export whenever the local tree changes",
	Long: `Watch observes the local tree and runs an export after each burst
of edits settles for the quiet interval. Conflicts are resolved as with
--force, since there is no prompt loop in watch mode. Stop with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		force = true
		engine, err := newEngine(false)
		if err != nil {
			fail(err)
		}

		watcher, err := watch.NewTreeWatcher(watchInterval)
		if err != nil {
			fail(err)
		}
		if err := watcher.Start(rootDir); err != nil {
			fail(err)
		}
		fmt.Printf("%s Watching %s (quiet interval %v)\n", ui.RenderAccent("→"), rootDir, watchInterval)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		for {
			select {
			case batch, ok := <-watcher.Changes():
				if !ok {
					return
				}
				fmt.Printf("%s %d file(s) changed, exporting\n", ui.RenderAccent("→"), len(batch))
				if err := engine.Export(); err != nil {
					fmt.Fprintf(os.Stderr, "Error during export: %v\n", err)
					continue
				}
				fmt.Printf("%s Export complete\n", ui.RenderPass("✓"))
			case err := <-watcher.Errors():
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			case <-stop:
				fmt.Printf("\n%s Stopping\n", ui.RenderAccent("→"))
				if err := watcher.Stop(); err != nil {
					fail(err)
				}
				return
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "quiet period before an export runs")
	rootCmd.AddCommand(watchCmd)
}
