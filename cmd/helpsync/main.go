// Command helpsync synchronizes help-center content between a local file
// tree, a help-desk system and a translation store.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/helpscribe/helpsync/internal/config"
	"github.com/helpscribe/helpsync/internal/remote/zendesk"
	"github.com/helpscribe/helpsync/internal/store"
	"github.com/helpscribe/helpsync/internal/sync"
	"github.com/helpscribe/helpsync/internal/translate"
	"github.com/helpscribe/helpsync/internal/ui"
)

var (
	rootDir string
	force   bool
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "helpsync",
	Short: "Synchronize help-center content with remote services",
	Long: `helpsync keeps a local tree of help-center content (categories,
sections, articles and their translations) in sync with a remote
help-desk system and a translation-management store.

Content lives under the root folder as one directory per category and
section, with per-locale article files. Credentials are read from
.helpsync.yaml in the root folder (run 'helpsync configure').`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "root folder of the local content tree")
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "resolve conflicts without prompting")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write diagnostics to a rotating log file")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newLogger builds the diagnostics logger. Progress lines always go to
// stdout via the printer; the logger carries warnings and details, shown
// with --verbose and optionally teed to a rotating file.
func newLogger() *log.Logger {
	var sinks []io.Writer
	if verbose {
		sinks = append(sinks, os.Stderr)
	}
	if logFile != "" {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}
	if len(sinks) == 0 {
		return log.New(io.Discard, "", 0)
	}
	return log.New(io.MultiWriter(sinks...), "[helpsync] ", log.LstdFlags)
}

// newEngine loads the config, validates the credentials the task needs
// and wires the sync engine's collaborators for one invocation.
func newEngine(requireTranslate bool) (*sync.Engine, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireRemote(); err != nil {
		return nil, err
	}
	if requireTranslate {
		if err := cfg.RequireTranslate(); err != nil {
			return nil, err
		}
	}

	logger := newLogger()
	var translator translate.Client = translate.Disabled{}
	if cfg.WebTranslateItAPIKey != "" {
		translator = translate.NewWebTranslateIt(cfg.WebTranslateItAPIKey, logger)
	}

	var pick sync.PickFunc
	if !force && term.IsTerminal(int(os.Stdin.Fd())) {
		pick = ui.PickOne
	}

	return sync.New(sync.Config{
		Remote:          zendesk.New(cfg.Company, cfg.User, cfg.Password, logger),
		Translator:      translator,
		Store:           store.New(rootDir),
		Printer:         ui.NewPrinter(os.Stdout),
		Logger:          logger,
		Force:           force,
		Pick:            pick,
		ImageCDN:        cfg.ImageCDN,
		DisableComments: cfg.DisableArticleComments,
	}), nil
}
