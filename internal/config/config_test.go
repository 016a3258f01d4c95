package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.RequireRemote(); !errors.Is(err, ErrMissing) {
		t.Errorf("RequireRemote = %v, want ErrMissing", err)
	}
	if err := c.RequireTranslate(); !errors.Is(err, ErrMissing) {
		t.Errorf("RequireTranslate = %v, want ErrMissing", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	root := t.TempDir()
	raw := "company: acme\nuser: sam@acme.test\npassword: hunter2\nwebtranslateit_api_key: wti-key\ndisable_article_comments: true\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Company != "acme" || c.User != "sam@acme.test" || c.Password != "hunter2" {
		t.Errorf("credentials = %+v", c)
	}
	if !c.DisableArticleComments {
		t.Errorf("DisableArticleComments not read")
	}
	if err := c.RequireRemote(); err != nil {
		t.Errorf("RequireRemote: %v", err)
	}
	if err := c.RequireTranslate(); err != nil {
		t.Errorf("RequireTranslate: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("company: acme\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("HELPSYNC_COMPANY", "globex")

	c, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Company != "globex" {
		t.Errorf("company = %q, want env override", c.Company)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	in := &Config{Company: "acme", User: "sam", Password: "pw", WebTranslateItAPIKey: "k", ImageCDN: "https://cdn.acme.test/img"}
	if err := Save(root, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}
