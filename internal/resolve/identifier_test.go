package resolve

import (
	"testing"
	"time"
)

func TestParseMessageID(t *testing.T) {
	tests := []struct {
		raw  string
		bare string
	}{
		{"abc@example.com", "abc@example.com"},
		{"<abc@example.com>", "abc@example.com"},
		{"  <abc@example.com>  ", "abc@example.com"},
		{"< abc@example.com >", "abc@example.com"},
		{"", ""},
		{"   ", ""},
		{"<>", ""},
		{"<", "<"},   // unbalanced delimiter is left alone
		{"a<b>c", "a<b>c"}, // interior delimiters are not stripped
	}
	for _, tt := range tests {
		id := ParseMessageID(tt.raw)
		if id.Bare() != tt.bare {
			t.Errorf("ParseMessageID(%q).Bare() = %q, want %q", tt.raw, id.Bare(), tt.bare)
		}
	}
}

func TestMessageIDIsZero(t *testing.T) {
	for _, raw := range []string{"", "   ", "<>", "< >"} {
		if !ParseMessageID(raw).IsZero() {
			t.Errorf("ParseMessageID(%q).IsZero() = false, want true", raw)
		}
	}
	if ParseMessageID("abc@example.com").IsZero() {
		t.Errorf("ParseMessageID(%q).IsZero() = true, want false", "abc@example.com")
	}
}

func TestParseMessageIDFormsEqual(t *testing.T) {
	// A bracketed identifier must normalize identically to its bare twin.
	bare := ParseMessageID("20240213212126.x@gmail.com")
	bracketed := ParseMessageID("<20240213212126.x@gmail.com>")
	if bare != bracketed {
		t.Errorf("ParseMessageID bare/bracketed mismatch: %v vs %v", bare, bracketed)
	}
	if bracketed.Bracketed() != "<20240213212126.x@gmail.com>" {
		t.Errorf("Bracketed() = %q", bracketed.Bracketed())
	}
}

func TestMessageIDDomain(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"abc@gmail.com", "gmail.com"},
		{"a@b@cpanel.net", "cpanel.net"},
		{"no-domain", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseMessageID(tt.raw).Domain(); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEmbeddedTime(t *testing.T) {
	id := ParseMessageID("20240213212126.4429A161827048B0@gmail.com")
	ts, ok := EmbeddedTime(id)
	if !ok {
		t.Fatalf("EmbeddedTime() ok = false, want true")
	}
	want := time.Date(2024, time.February, 13, 21, 21, 26, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("EmbeddedTime() = %v, want %v", ts, want)
	}
}

func TestEmbeddedTimeSeparators(t *testing.T) {
	for _, raw := range []string{
		"20240213212126.rest@example.com",
		"20240213212126-rest@example.com",
		"20240213212126@example.com",
	} {
		if _, ok := EmbeddedTime(ParseMessageID(raw)); !ok {
			t.Errorf("EmbeddedTime(%q) ok = false, want true", raw)
		}
	}
}

func TestEmbeddedTimeRejects(t *testing.T) {
	tests := []string{
		"",
		"abc@example.com",
		"2024021321212@example.com",    // 13 digits
		"202402132121261@example.com",  // 15 digits, no separator after 14
		"20240213212126rest@example.com", // digits not followed by a separator
		"20241313212126.x@example.com", // month 13
		"20240232212126.x@example.com", // February 32nd
	}
	for _, raw := range tests {
		if ts, ok := EmbeddedTime(ParseMessageID(raw)); ok {
			t.Errorf("EmbeddedTime(%q) = %v, want no timestamp", raw, ts)
		}
	}
}
