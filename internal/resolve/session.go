package resolve

import (
	"context"
	"net/textproto"
	"time"
)

// Encoding selects how a header search value is rendered on the wire.
// Server dialects differ in which form they accept, so every logical query
// is attempted in both encodings before being given up on.
type Encoding int

const (
	// EncodingStructured sends the value through the client library's
	// default argument encoding (literal syntax when required).
	EncodingStructured Encoding = iota
	// EncodingQuoted forces the value into IMAP quoted-string syntax,
	// sanitizing characters that would require a literal.
	EncodingQuoted
)

func (e Encoding) String() string {
	if e == EncodingQuoted {
		return "quoted"
	}
	return "structured"
}

// HeaderQuery is a single header-contains-value search request.
type HeaderQuery struct {
	Field    string
	Value    string
	Encoding Encoding
}

// Header holds fetched header fields keyed by their canonical MIME form.
type Header map[string]string

// Get returns the value of the named field, matching case-insensitively.
func (h Header) Get(name string) string {
	return h[textproto.CanonicalMIMEHeaderKey(name)]
}

// Set stores a field under its canonical key.
func (h Header) Set(name, value string) {
	h[textproto.CanonicalMIMEHeaderKey(name)] = value
}

// Session is the mailbox session the resolver drives. Implementations own a
// single authenticated connection whose active-mailbox selection is shared,
// mutable state; the resolver therefore never issues overlapping calls.
//
// All selections must be read-only and an empty search result is not an
// error. Errors that mean the connection itself is unusable must unwrap to
// *TransportError so the resolver can abort instead of skipping.
type Session interface {
	// Select makes mailbox the active one for subsequent searches.
	Select(ctx context.Context, mailbox string) error
	// SearchHeader returns the sequence numbers of messages whose named
	// header contains the query value.
	SearchHeader(ctx context.Context, q HeaderQuery) ([]uint32, error)
	// SearchReceived returns the sequence numbers of messages delivered on
	// or after since and strictly before before (calendar-day granularity).
	SearchReceived(ctx context.Context, since, before time.Time) ([]uint32, error)
	// FetchFields fetches only the named header fields of one message.
	FetchFields(ctx context.Context, seqNum uint32, fields []string) (Header, error)
}
