package imapx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	imap "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/ymatsuda/mailseek/internal/resolve"
)

// Option is a functional option for Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// MailboxInfo describes one mailbox from the server's LIST response.
type MailboxInfo struct {
	Name       string
	Selectable bool
}

// Session is a single authenticated IMAP connection. The active mailbox is
// shared, mutable connection state, so callers must not interleave
// operations; the resolver drives the session strictly sequentially.
type Session struct {
	cfg    *Config
	logger *slog.Logger

	conn     *imapclient.Client
	selected string

	mailboxCache []MailboxInfo
}

// Dial connects and logs in. A login or dial failure is a transport error:
// nothing can proceed without the session.
func Dial(cfg *Config, password string, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	addr := cfg.Addr()
	s.logger.Debug("connecting to IMAP server", "addr", addr, "tls", cfg.TLS, "starttls", cfg.STARTTLS)

	imapOpts := &imapclient.Options{}
	var (
		conn *imapclient.Client
		err  error
	)
	if cfg.TLS {
		conn, err = imapclient.DialTLS(addr, imapOpts)
	} else if cfg.STARTTLS {
		conn, err = imapclient.DialStartTLS(addr, imapOpts)
	} else {
		conn, err = imapclient.DialInsecure(addr, imapOpts)
	}
	if err != nil {
		return nil, &resolve.TransportError{Op: "dial " + addr, Err: err}
	}

	if err := conn.Login(cfg.Username, password).Wait(); err != nil {
		_ = conn.Close()
		return nil, &resolve.TransportError{Op: "login " + cfg.Username, Err: err}
	}

	s.conn = conn
	s.logger.Debug("connected and authenticated", "user", cfg.Username)
	return s, nil
}

// Mailboxes returns every mailbox the server lists, flagging selectability.
// The result is cached for the lifetime of the session.
func (s *Session) Mailboxes(ctx context.Context) ([]MailboxInfo, error) {
	if s.mailboxCache != nil {
		return s.mailboxCache, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &resolve.TransportError{Op: "LIST", Err: err}
	}

	items, err := s.conn.List("", "*", nil).Collect()
	if err != nil {
		return nil, s.wrap("LIST", err)
	}

	infos := make([]MailboxInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, MailboxInfo{
			Name:       item.Mailbox,
			Selectable: !hasAttr(item.Attrs, imap.MailboxAttrNoSelect),
		})
	}
	s.mailboxCache = infos
	return infos, nil
}

// SelectableMailboxes returns the names of mailboxes that can be selected
// for search, in server order. This is the set the resolver scans;
// non-selectable containers never reach it.
func (s *Session) SelectableMailboxes(ctx context.Context) ([]string, error) {
	infos, err := s.Mailboxes(ctx)
	if err != nil {
		return nil, err
	}
	return selectableNames(infos), nil
}

func selectableNames(infos []MailboxInfo) []string {
	var names []string
	for _, info := range infos {
		if info.Selectable {
			names = append(names, info.Name)
		}
	}
	return names
}

// Select makes mailbox the active one, read-only. A no-op when already
// selected.
func (s *Session) Select(ctx context.Context, mailbox string) error {
	if s.selected == mailbox {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &resolve.TransportError{Op: "SELECT", Err: err}
	}
	opts := &imap.SelectOptions{ReadOnly: true}
	if _, err := s.conn.Select(mailbox, opts).Wait(); err != nil {
		return s.wrap(fmt.Sprintf("SELECT %q", mailbox), err)
	}
	s.selected = mailbox
	return nil
}

// Selected returns the currently selected mailbox name, or "".
func (s *Session) Selected() string { return s.selected }

// SearchHeader issues one header-contains-value search against the selected
// mailbox and returns matching sequence numbers. The query's encoding
// controls how the value travels on the wire: structured hands it to the
// client's default argument encoder (which falls back to literal syntax),
// quoted sanitizes it so the encoder emits an IMAP quoted string. Some
// servers only honor one of the two.
func (s *Session) SearchHeader(ctx context.Context, q resolve.HeaderQuery) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, &resolve.TransportError{Op: "SEARCH", Err: err}
	}
	value := q.Value
	if q.Encoding == resolve.EncodingQuoted {
		value = quotable(value)
	}
	criteria := &imap.SearchCriteria{
		Header: []imap.SearchCriteriaHeaderField{{Key: q.Field, Value: value}},
	}
	data, err := s.conn.Search(criteria, nil).Wait()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("SEARCH HEADER %s", q.Field), err)
	}
	return data.AllSeqNums(), nil
}

// SearchReceived returns the sequence numbers of messages received on or
// after since and before before. The server compares internal dates at
// calendar-day granularity.
func (s *Session) SearchReceived(ctx context.Context, since, before time.Time) ([]uint32, error) {
	if err := ctx.Err(); err != nil {
		return nil, &resolve.TransportError{Op: "SEARCH", Err: err}
	}
	criteria := &imap.SearchCriteria{
		Since:  since,
		Before: before,
	}
	data, err := s.conn.Search(criteria, nil).Wait()
	if err != nil {
		return nil, s.wrap("SEARCH SINCE/BEFORE", err)
	}
	return data.AllSeqNums(), nil
}

// FetchFields fetches only the named header fields of one message in the
// selected mailbox.
func (s *Session) FetchFields(ctx context.Context, seqNum uint32, fields []string) (resolve.Header, error) {
	if err := ctx.Err(); err != nil {
		return nil, &resolve.TransportError{Op: "FETCH", Err: err}
	}
	section := &imap.FetchItemBodySection{
		Specifier:    imap.PartSpecifierHeader,
		HeaderFields: fields,
		Peek:         true,
	}
	fetchOpts := &imap.FetchOptions{
		BodySection: []*imap.FetchItemBodySection{section},
	}
	msgs, err := s.conn.Fetch(imap.SeqSetNum(seqNum), fetchOpts).Collect()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("FETCH %d", seqNum), err)
	}
	if len(msgs) == 0 || len(msgs[0].BodySection) == 0 {
		return nil, fmt.Errorf("FETCH %d: no header data returned", seqNum)
	}
	return parseHeaderBlock(msgs[0].BodySection[0].Bytes)
}

// FetchFullMessage fetches the entire raw message. Used only after a match
// is confirmed, to build the display record.
func (s *Session) FetchFullMessage(ctx context.Context, seqNum uint32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &resolve.TransportError{Op: "FETCH", Err: err}
	}
	fetchOpts := &imap.FetchOptions{
		BodySection: []*imap.FetchItemBodySection{{Peek: true}}, // empty section = entire message
	}
	msgs, err := s.conn.Fetch(imap.SeqSetNum(seqNum), fetchOpts).Collect()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("FETCH %d", seqNum), err)
	}
	if len(msgs) == 0 || len(msgs[0].BodySection) == 0 {
		return nil, fmt.Errorf("FETCH %d: no body returned", seqNum)
	}
	return msgs[0].BodySection[0].Bytes, nil
}

// Close logs out and disconnects.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	s.selected = ""
	return conn.Logout().Wait()
}

// wrap classifies an operation failure: connection-level errors become
// transport errors that abort the run, while server rejections (NO/BAD)
// stay plain so the caller can skip the attempt and move on.
func (s *Session) wrap(op string, err error) error {
	if isConnError(err) {
		return &resolve.TransportError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConnError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

// hasAttr checks whether attr is in the attrs list.
func hasAttr(attrs []imap.MailboxAttr, attr imap.MailboxAttr) bool {
	for _, a := range attrs {
		if a == attr {
			return true
		}
	}
	return false
}
