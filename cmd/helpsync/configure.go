package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helpscribe/helpsync/internal/config"
	"github.com/helpscribe/helpsync/internal/ui"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively write the config file",
	Long: `Configure prompts for credentials and settings and writes them to
.helpsync.yaml in the root folder. Existing values are offered as
defaults, so re-running only to change one setting is cheap.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fail(fmt.Errorf("configure needs an interactive terminal; edit %s directly instead", config.FileName))
		}

		cfg, err := config.Load(rootDir)
		if err != nil {
			fail(err)
		}

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Help-desk company subdomain").
				Description("the <company> in https://<company>.zendesk.com").
				Value(&cfg.Company),
			huh.NewInput().
				Title("Help-desk user email").
				Value(&cfg.User),
			huh.NewInput().
				Title("Help-desk password or API token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Password),
			huh.NewInput().
				Title("WebTranslateIt API key").
				Description("leave empty to skip translation-store features").
				Value(&cfg.WebTranslateItAPIKey),
			huh.NewInput().
				Title("Image CDN base path").
				Description("replaces $IMAGE_ROOT in article image references").
				Value(&cfg.ImageCDN),
			huh.NewConfirm().
				Title("Disable comments on newly created articles?").
				Value(&cfg.DisableArticleComments),
		))
		if err := form.Run(); err != nil {
			fail(err)
		}

		if err := config.Save(rootDir, cfg); err != nil {
			fail(err)
		}
		fmt.Printf("%s Wrote %s\n", ui.RenderPass("✓"), config.FileName)
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
