// Package config handles loading and managing mailseek configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the mailseek configuration.
type Config struct {
	IMAP      IMAPConfig          `toml:"imap"`
	Resolve   ResolveConfig       `toml:"resolve"`
	Providers map[string]Provider `toml:"providers"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// IMAPConfig holds default connection settings, overridable per run by
// command-line flags.
type IMAPConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	STARTTLS       bool   `toml:"starttls"`
	NoTLS          bool   `toml:"no_tls"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ResolveConfig holds resolution tuning.
type ResolveConfig struct {
	// HintDomains lists sender domains that, when they appear as an
	// identifier's own suffix, narrow the time-window candidate pool.
	HintDomains []string `toml:"hint_domains"`
	// Out is the default CSV output path.
	Out string `toml:"out"`
}

// Provider is a named IMAP endpoint, selectable with --provider.
type Provider struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// builtinProviders covers the common public services. Entries in the
// config file's [providers] table override or extend these.
var builtinProviders = map[string]Provider{
	"gmail":   {Host: "imap.gmail.com", Port: 993},
	"outlook": {Host: "outlook.office365.com", Port: 993},
	"yahoo":   {Host: "imap.mail.yahoo.com", Port: 993},
}

// DefaultHome returns the default mailseek home directory.
// Respects the MAILSEEK_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("MAILSEEK_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mailseek"
	}
	return filepath.Join(home, ".mailseek")
}

// Load reads the configuration from the specified file. If path is empty,
// the default location (~/.mailseek/config.toml) is used; a missing file
// yields the defaults. homeDir overrides the home directory when non-empty.
func Load(path, homeDir string) (*Config, error) {
	if homeDir == "" {
		homeDir = DefaultHome()
	}
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		IMAP: IMAPConfig{
			TimeoutSeconds: 60,
		},
		Resolve: ResolveConfig{
			Out: "mailseek_matches.csv",
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	// File entries override the builtin provider set.
	merged := make(map[string]Provider, len(builtinProviders)+len(cfg.Providers))
	for name, p := range builtinProviders {
		merged[name] = p
	}
	for name, p := range cfg.Providers {
		merged[name] = p
	}
	cfg.Providers = merged

	cfg.Resolve.Out = expandPath(cfg.Resolve.Out)
	return cfg, nil
}

// ConfigFilePath returns the path of the config file for this home.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// Provider looks up a provider by name, case-insensitively.
func (c *Config) Provider(name string) (Provider, bool) {
	for alias, p := range c.Providers {
		if strings.EqualFold(alias, name) {
			return p, true
		}
	}
	return Provider{}, false
}

// ProviderNames returns the configured provider aliases, sorted.
func (c *Config) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
