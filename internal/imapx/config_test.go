package imapx

import "testing"

func TestConfigAddr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit port", Config{Host: "mail.example.com", Port: 1993, TLS: true}, "mail.example.com:1993"},
		{"tls default", Config{Host: "mail.example.com", TLS: true}, "mail.example.com:993"},
		{"starttls default", Config{Host: "mail.example.com", STARTTLS: true}, "mail.example.com:143"},
		{"plain default", Config{Host: "mail.example.com"}, "mail.example.com:143"},
	}
	for _, tt := range tests {
		if got := tt.cfg.Addr(); got != tt.want {
			t.Errorf("%s: Addr() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
