// Package resolve locates a message inside a remote mailbox hierarchy by
// Message-ID, falling back through progressively weaker matching tiers when
// an exact header search comes up empty.
package resolve

import (
	"regexp"
	"strings"
	"time"
)

// MessageID is a normalized message identifier. It holds the bare form (no
// angle brackets); the bracketed form is derived on demand. Both forms have
// to be tried against servers because header rewriting and case-sensitivity
// vary between implementations.
type MessageID struct {
	bare string
}

// ParseMessageID normalizes a raw identifier: surrounding whitespace is
// trimmed and a single pair of enclosing angle brackets is removed. No
// further syntax validation happens here; malformed input simply fails to
// match anything downstream.
func ParseMessageID(raw string) MessageID {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return MessageID{bare: s}
}

// Bare returns the identifier without angle brackets.
func (id MessageID) Bare() string { return id.bare }

// Bracketed returns the identifier wrapped in angle brackets, the canonical
// RFC 5322 spelling.
func (id MessageID) Bracketed() string { return "<" + id.bare + ">" }

// IsZero reports whether the identifier is empty.
func (id MessageID) IsZero() bool { return id.bare == "" }

func (id MessageID) String() string { return id.Bracketed() }

// Domain returns the part after the last "@" of the bare form, or "" when
// the identifier has no domain suffix.
func (id MessageID) Domain() string {
	if idx := strings.LastIndexByte(id.bare, '@'); idx >= 0 {
		return id.bare[idx+1:]
	}
	return ""
}

// Some identifier-generation schemes start the token with a 14-digit
// creation timestamp, e.g. "20240213212126.4429A16@example.com".
var embeddedTimeRe = regexp.MustCompile(`^(\d{14})[.\-@]`)

// EmbeddedTime extracts a creation timestamp from identifiers whose bare
// form starts with exactly 14 digits (YYYYMMDDHHMMSS) followed by a
// separator. The digits are interpreted in UTC with no conversion. Most
// identifiers carry no such timestamp; ok=false is a normal outcome and
// merely disables the time-window tier.
func EmbeddedTime(id MessageID) (ts time.Time, ok bool) {
	m := embeddedTimeRe.FindStringSubmatch(id.bare)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102150405", m[1])
	if err != nil {
		// 14 digits but not a real calendar timestamp (month 13 etc).
		return time.Time{}, false
	}
	return t, true
}
