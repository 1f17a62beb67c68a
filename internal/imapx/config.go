// Package imapx owns the IMAP session: connection, authentication, mailbox
// enumeration, and the read-only search and fetch operations the resolver
// drives. It implements resolve.Session.
package imapx

import "fmt"

// Config holds connection settings for an IMAP server.
type Config struct {
	Host     string
	Port     int
	TLS      bool // Implicit TLS (IMAPS, port 993)
	STARTTLS bool // STARTTLS upgrade (port 143)
	Username string
}

// Addr returns the "host:port" string, defaulting the port from the TLS
// mode when unset.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		if c.TLS {
			port = 993
		} else {
			port = 143
		}
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}
