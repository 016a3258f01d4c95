// Package config loads task settings from the root folder's .helpsync.yaml
// file, with HELPSYNC_* environment variables taking precedence. Tasks
// validate the settings they need before doing any I/O.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name, looked up inside the root folder.
const FileName = ".helpsync.yaml"

// ErrMissing marks a required setting absent for the requested task.
// Checked with errors.Is.
var ErrMissing = errors.New("missing required setting")

// Config carries every recognized setting. Zero values mean unset.
type Config struct {
	Company                string
	User                   string
	Password               string
	WebTranslateItAPIKey   string
	ImageCDN               string
	DisableArticleComments bool
}

// Load reads the config file under root, if present, and applies
// environment overrides. A missing file is not an error; validation
// happens per task via the Require methods.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(root, FileName))
	v.SetEnvPrefix("HELPSYNC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return &Config{
		Company:                v.GetString("company"),
		User:                   v.GetString("user"),
		Password:               v.GetString("password"),
		WebTranslateItAPIKey:   v.GetString("webtranslateit_api_key"),
		ImageCDN:               v.GetString("image_cdn"),
		DisableArticleComments: v.GetBool("disable_article_comments"),
	}, nil
}

// Save writes the config file under root. Secrets live in it, so it is
// not world readable.
func Save(root string, c *Config) error {
	data := map[string]any{
		"company":                  c.Company,
		"user":                     c.User,
		"password":                 c.Password,
		"webtranslateit_api_key":   c.WebTranslateItAPIKey,
		"image_cdn":                c.ImageCDN,
		"disable_article_comments": c.DisableArticleComments,
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RequireRemote validates the help-desk credentials.
func (c *Config) RequireRemote() error {
	for key, value := range map[string]string{
		"company":  c.Company,
		"user":     c.User,
		"password": c.Password,
	} {
		if value == "" {
			return missing(key)
		}
	}
	return nil
}

// RequireTranslate validates the translation-store credentials.
func (c *Config) RequireTranslate() error {
	if c.WebTranslateItAPIKey == "" {
		return missing("webtranslateit_api_key")
	}
	return nil
}

func missing(key string) error {
	return fmt.Errorf("%w: %s (run 'helpsync configure')", ErrMissing, key)
}
