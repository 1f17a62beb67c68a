package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MAILSEEK_HOME", tmpDir)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.IMAP.TimeoutSeconds != 60 {
		t.Errorf("IMAP.TimeoutSeconds = %d, want 60", cfg.IMAP.TimeoutSeconds)
	}
	if cfg.Resolve.Out != "mailseek_matches.csv" {
		t.Errorf("Resolve.Out = %q, want mailseek_matches.csv", cfg.Resolve.Out)
	}
	if cfg.HomeDir != tmpDir {
		t.Errorf("HomeDir = %q, want %q", cfg.HomeDir, tmpDir)
	}
}

func TestBuiltinProviders(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MAILSEEK_HOME", tmpDir)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p, ok := cfg.Provider("gmail")
	if !ok {
		t.Fatalf("Provider(gmail) not found")
	}
	if p.Host != "imap.gmail.com" || p.Port != 993 {
		t.Errorf("Provider(gmail) = %+v", p)
	}

	// Lookup is case-insensitive.
	if _, ok := cfg.Provider("GMail"); !ok {
		t.Errorf("Provider(GMail) not found, want case-insensitive match")
	}
	if _, ok := cfg.Provider("nope"); ok {
		t.Errorf("Provider(nope) found, want miss")
	}
}

func TestLoadProviderOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MAILSEEK_HOME", tmpDir)

	configContent := `
[imap]
host = "mail.corp.example.com"
username = "info@example.com"

[resolve]
hint_domains = ["gmail.com", "cpanel.net"]

[providers.gmail]
host = "imap.gmail.example.net"
port = 1993

[providers.corp]
host = "mail1234.corp.example.com"
port = 993
`
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(configPath, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.IMAP.Host != "mail.corp.example.com" {
		t.Errorf("IMAP.Host = %q", cfg.IMAP.Host)
	}
	if len(cfg.Resolve.HintDomains) != 2 {
		t.Errorf("Resolve.HintDomains = %v, want 2 entries", cfg.Resolve.HintDomains)
	}

	// File entry overrides the builtin.
	p, _ := cfg.Provider("gmail")
	if p.Host != "imap.gmail.example.net" || p.Port != 1993 {
		t.Errorf("Provider(gmail) = %+v, want file override", p)
	}
	// File-only entry is added; untouched builtins survive.
	if _, ok := cfg.Provider("corp"); !ok {
		t.Errorf("Provider(corp) not found")
	}
	if _, ok := cfg.Provider("yahoo"); !ok {
		t.Errorf("Provider(yahoo) lost after merge")
	}
}
