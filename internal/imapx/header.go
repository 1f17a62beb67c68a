package imapx

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/emersion/go-message/textproto"

	"github.com/ymatsuda/mailseek/internal/resolve"
)

// parseHeaderBlock parses a raw BODY[HEADER.FIELDS (...)] block into header
// fields. Folded continuation lines are unfolded; field names are stored
// under their canonical form.
func parseHeaderBlock(raw []byte) (resolve.Header, error) {
	// Servers terminate the block with a blank line; ReadHeader needs it.
	if !bytes.HasSuffix(raw, []byte("\r\n\r\n")) {
		raw = append(raw, '\r', '\n')
	}
	hdr, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse header block: %w", err)
	}

	h := resolve.Header{}
	fields := hdr.Fields()
	for fields.Next() {
		// Collapse folding whitespace so values compare and display as a
		// single line.
		h.Set(fields.Key(), strings.Join(strings.Fields(fields.Value()), " "))
	}
	return h, nil
}

// quotable strips characters that would force the client library to send
// the value as a literal: CR/LF, non-ASCII bytes, and the quoted-string
// specials. What remains always travels as an IMAP quoted string.
func quotable(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < 0x20 || c > 0x7e || c == '"' || c == '\\' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
