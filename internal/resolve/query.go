package resolve

// attempt is one remote search request in the header-tier ladder.
type attempt struct {
	tier Tier
	q    HeaderQuery
}

// Header field spellings tried per tier. Servers disagree on whether header
// names compare case-sensitively, so the canonical spelling and the common
// lowercase-d variant are both issued.
var (
	exactFields     = []string{"Message-ID", "Message-Id"}
	referenceFields = []string{"References", "In-Reply-To"}
)

// headerAttempts builds the ordered attempt ladder for the exact-header and
// reference-chain tiers: for each field spelling, the bracketed then the
// bare form, each rendered in the structured then the quoted encoding. The
// caller short-circuits on the first attempt returning a non-empty set.
func headerAttempts(id MessageID) []attempt {
	values := []string{id.Bracketed(), id.Bare()}
	encodings := []Encoding{EncodingStructured, EncodingQuoted}

	var attempts []attempt
	add := func(tier Tier, fields []string) {
		for _, field := range fields {
			for _, value := range values {
				for _, enc := range encodings {
					attempts = append(attempts, attempt{
						tier: tier,
						q:    HeaderQuery{Field: field, Value: value, Encoding: enc},
					})
				}
			}
		}
	}
	add(TierExactHeader, exactFields)
	add(TierReferenceChain, referenceFields)
	return attempts
}
