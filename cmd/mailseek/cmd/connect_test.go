package cmd

import (
	"testing"

	"github.com/ymatsuda/mailseek/internal/config"
)

// resetConnection clears the shared connection state and restores it when
// the test finishes.
func resetConnection(t *testing.T) {
	t.Helper()
	oldCfg := cfg
	oldHost, oldPort := imapHost, imapPort
	oldProvider, oldUser := imapProvider, imapUsername
	t.Cleanup(func() {
		cfg = oldCfg
		imapHost, imapPort = oldHost, oldPort
		imapProvider, imapUsername = oldProvider, oldUser
	})

	c, err := config.Load("", t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg = c
	imapHost, imapPort = "", 0
	imapProvider, imapUsername = "", "user@example.com"
}

func TestIMAPConfigProviderBeatsConfigFile(t *testing.T) {
	resetConnection(t)
	cfg.IMAP.Host = "config-host.example.com"
	cfg.IMAP.Port = 1143
	imapProvider = "gmail"

	got, err := imapConfig()
	if err != nil {
		t.Fatalf("imapConfig() error = %v", err)
	}
	if got.Host != "imap.gmail.com" {
		t.Errorf("Host = %q, want %q", got.Host, "imap.gmail.com")
	}
	if got.Port != 993 {
		t.Errorf("Port = %d, want 993", got.Port)
	}
}

func TestIMAPConfigFlagBeatsProvider(t *testing.T) {
	resetConnection(t)
	imapHost = "edge.example.com"
	imapProvider = "gmail"

	got, err := imapConfig()
	if err != nil {
		t.Fatalf("imapConfig() error = %v", err)
	}
	if got.Host != "edge.example.com" {
		t.Errorf("Host = %q, want %q", got.Host, "edge.example.com")
	}
	// An unset --port still picks up the provider's port.
	if got.Port != 993 {
		t.Errorf("Port = %d, want 993", got.Port)
	}
}

func TestIMAPConfigFileIsTheFallback(t *testing.T) {
	resetConnection(t)
	cfg.IMAP.Host = "config-host.example.com"
	cfg.IMAP.Port = 1143

	got, err := imapConfig()
	if err != nil {
		t.Fatalf("imapConfig() error = %v", err)
	}
	if got.Host != "config-host.example.com" {
		t.Errorf("Host = %q, want %q", got.Host, "config-host.example.com")
	}
	if got.Port != 1143 {
		t.Errorf("Port = %d, want 1143", got.Port)
	}
}

func TestTrimLineEnding(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"secret\n", "secret"},
		{"secret\r\n", "secret"},
		{"secret", "secret"},
		{"  padded secret  ", "  padded secret  "},
		{" trailing space \n", " trailing space "},
	}
	for _, tt := range tests {
		if got := trimLineEnding(tt.in); got != tt.want {
			t.Errorf("trimLineEnding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIMAPConfigUnknownProvider(t *testing.T) {
	resetConnection(t)
	imapProvider = "nosuch"

	if _, err := imapConfig(); err == nil {
		t.Errorf("imapConfig() error = nil, want unknown provider")
	}
}
