package resolve

// Tier is one matching strategy in the fallback ladder. Tiers are tried in
// declaration order within a mailbox; the first tier producing a candidate
// ends the scan for that mailbox.
type Tier int

const (
	// TierNone means no tier matched.
	TierNone Tier = iota
	// TierExactHeader matches the Message-ID header directly, trying both
	// field-name spellings and both delimiter forms.
	TierExactHeader
	// TierReferenceChain matches the identifier inside the References or
	// In-Reply-To headers of a descendant message.
	TierReferenceChain
	// TierTimeWindow scans messages delivered within one day of the
	// identifier's embedded timestamp and verifies their headers directly.
	TierTimeWindow
)

func (t Tier) String() string {
	switch t {
	case TierExactHeader:
		return "exact-header"
	case TierReferenceChain:
		return "reference-chain"
	case TierTimeWindow:
		return "time-window"
	default:
		return "none"
	}
}
