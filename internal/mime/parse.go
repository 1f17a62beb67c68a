// Package mime parses a fetched message into the display record shown for
// a confirmed match, using enmime for charset and encoded-word handling.
package mime

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
)

// Message is the decoded view of a matched email.
type Message struct {
	Subject   string
	Date      time.Time
	RawDate   string // original Date header, kept for reporting
	From      []Address
	To        []Address
	MessageID string
	BodyText  string
	BodyHTML  string
}

// Address is an email address with optional display name.
type Address struct {
	Name  string
	Email string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Parse decodes raw message bytes into a Message.
func Parse(raw []byte) (*Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	msg := &Message{
		Subject:   env.GetHeader("Subject"),
		MessageID: env.GetHeader("Message-ID"),
		RawDate:   env.GetHeader("Date"),
		From:      addressList(env, "From"),
		To:        addressList(env, "To"),
		BodyText:  env.Text,
		BodyHTML:  env.HTML,
	}
	if msg.RawDate != "" {
		if t, ok := parseDate(msg.RawDate); ok {
			msg.Date = t
		}
	}
	return msg, nil
}

// addressList parses an address header using enmime's AddressList method.
func addressList(env *enmime.Envelope, header string) []Address {
	list, err := env.AddressList(header)
	if err != nil || list == nil {
		return nil
	}
	addresses := make([]Address, 0, len(list))
	for _, addr := range list {
		if addr.Address == "" {
			continue
		}
		addresses = append(addresses, Address{
			Name:  addr.Name,
			Email: strings.ToLower(addr.Address),
		})
	}
	return addresses
}

// Body returns the best available body text, preferring the plain part and
// falling back to stripped HTML.
func (m *Message) Body() string {
	if m.BodyText != "" {
		return m.BodyText
	}
	if m.BodyHTML != "" {
		return StripHTML(m.BodyHTML)
	}
	return ""
}

// Snippet returns the body truncated to at most n runes, with an ellipsis
// when shortened.
func (m *Message) Snippet(n int) string {
	body := strings.TrimSpace(m.Body())
	runes := []rune(body)
	if len(runes) <= n {
		return body
	}
	return string(runes[:n]) + "..."
}

// FirstFrom returns the first From address, or the zero Address.
func (m *Message) FirstFrom() Address {
	if len(m.From) > 0 {
		return m.From[0]
	}
	return Address{}
}

// dateFormats lists common email date formats for parseDate.
var dateFormats = []string{
	time.RFC1123Z,                    // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,                     // "Mon, 02 Jan 2006 15:04:05 MST"
	"Mon, 2 Jan 2006 15:04:05 -0700", // Single-digit day
	"Mon, 2 Jan 2006 15:04:05 MST",   // Single-digit day with named TZ
	"2 Jan 2006 15:04:05 -0700",      // No weekday
	"2 Jan 2006 15:04:05 MST",        // No weekday, named TZ
	time.RFC822Z,                     // "02 Jan 06 15:04 -0700"
	time.RFC822,                      // "02 Jan 06 15:04 MST"
	time.RFC3339,
}

// parseDate attempts to parse a Date header. Trailing parenthesized zone
// names like "(JST)" are stripped before parsing.
func parseDate(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if idx := strings.LastIndex(s, "("); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

var (
	blockTagRe  = regexp.MustCompile(`(?i)<(/?)(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|ul|ol)[^>]*>`)
	scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTagRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// StripHTML removes tags, decodes entities, and normalizes whitespace so an
// HTML-only message still yields a readable snippet.
func StripHTML(rawHTML string) string {
	text := scriptTagRe.ReplaceAllString(rawHTML, "")
	text = styleTagRe.ReplaceAllString(text, "")
	text = blockTagRe.ReplaceAllString(text, "\n")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, " ", " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
