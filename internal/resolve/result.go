package resolve

// Snapshot is the header data captured for a matched message, enough to
// report or export the match without refetching.
type Snapshot struct {
	From      string
	To        string
	Subject   string
	Date      string
	MessageID string
}

// Result is the outcome of resolving one identifier. When Matched is false
// the mailbox, tier, sequence number, and snapshot are all zero.
type Result struct {
	ID      MessageID
	Matched bool
	Mailbox string
	Tier    Tier
	SeqNum  uint32
	Header  Snapshot
}

// snapshotFields are the header fields fetched for a confirmed match.
var snapshotFields = []string{"From", "To", "Subject", "Date", "Message-ID"}

func snapshotFromHeader(h Header) Snapshot {
	return Snapshot{
		From:      h.Get("From"),
		To:        h.Get("To"),
		Subject:   h.Get("Subject"),
		Date:      h.Get("Date"),
		MessageID: h.Get("Message-ID"),
	}
}
