package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ymatsuda/mailseek/internal/imapx"
)

// Connection flags shared by the commands that talk to a server.
var (
	imapHost     string
	imapPort     int
	imapProvider string
	imapUsername string
	imapSTARTTLS bool
	imapNoTLS    bool
)

func addConnectionFlags(c *cobra.Command) {
	c.Flags().StringVar(&imapHost, "host", "", "IMAP server hostname")
	c.Flags().IntVar(&imapPort, "port", 0, "IMAP server port (default 993, or 143 without TLS)")
	c.Flags().StringVar(&imapProvider, "provider", "", "named provider alias from the config file")
	c.Flags().StringVarP(&imapUsername, "username", "u", "", "IMAP username")
	c.Flags().BoolVar(&imapSTARTTLS, "starttls", false, "use STARTTLS upgrade instead of implicit TLS")
	c.Flags().BoolVar(&imapNoTLS, "no-tls", false, "connect without encryption (not recommended)")
}

// imapConfig resolves the connection settings from flags, the --provider
// alias, and the config file, in that precedence order.
func imapConfig() (*imapx.Config, error) {
	host := imapHost
	port := imapPort

	if imapProvider != "" {
		p, ok := cfg.Provider(imapProvider)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (see 'mailseek providers')", imapProvider)
		}
		if host == "" {
			host = p.Host
		}
		if port == 0 {
			port = p.Port
		}
	}
	if host == "" {
		host = cfg.IMAP.Host
	}
	if port == 0 {
		port = cfg.IMAP.Port
	}
	if host == "" {
		return nil, fmt.Errorf("no IMAP host: use --host, --provider, or set [imap] host in %s", cfg.ConfigFilePath())
	}

	username := imapUsername
	if username == "" {
		username = cfg.IMAP.Username
	}
	if username == "" {
		return nil, fmt.Errorf("no username: use --username or set [imap] username in %s", cfg.ConfigFilePath())
	}

	starttls := imapSTARTTLS || cfg.IMAP.STARTTLS
	noTLS := imapNoTLS || cfg.IMAP.NoTLS
	return &imapx.Config{
		Host:     host,
		Port:     port,
		TLS:      !noTLS && !starttls,
		STARTTLS: starttls,
		Username: username,
	}, nil
}

// readPassword takes the password from MAILSEEK_PASSWORD (or the older
// MAILSEEK_PASS), falling back to an interactive prompt. Passwords are
// never accepted as flags: they would leak into shell history and process
// listings.
func readPassword(username, host string) (string, error) {
	for _, env := range []string{"MAILSEEK_PASSWORD", "MAILSEEK_PASS"} {
		if p := os.Getenv(env); p != "" {
			return p, nil
		}
	}
	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", username, host)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := trimLineEnding(string(raw))
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}

// trimLineEnding drops a trailing CR/LF without touching other whitespace,
// which can be part of the password itself.
func trimLineEnding(s string) string {
	return strings.TrimRight(s, "\r\n")
}
