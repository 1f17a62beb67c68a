package resolve

import (
	"context"
	"strings"
)

// hintFields is the minimal fetch used for sender-domain narrowing.
var hintFields = []string{"From"}

// scanWindow is the time-window tier: when the identifier embeds a creation
// timestamp, search the selected mailbox for messages delivered within one
// calendar day either side of it and verify each candidate's Message-ID
// header directly. This survives servers that rewrote or stripped the
// bracketed identifier, because the literal token usually remains as a
// substring, while the date window bounds the per-message fetch cost.
func (r *Resolver) scanWindow(ctx context.Context, id MessageID) (uint32, bool, error) {
	ts, ok := EmbeddedTime(id)
	if !ok {
		return 0, false, nil
	}

	since := ts.AddDate(0, 0, -1)
	before := ts.AddDate(0, 0, 1)
	candidates, err := r.session.SearchReceived(ctx, since, before)
	if err != nil {
		if IsTransport(err) {
			return 0, false, err
		}
		r.logger.Debug("window search failed", "error", err)
		return 0, false, nil
	}
	if len(candidates) == 0 {
		return 0, false, nil
	}

	pool := candidates
	if hint := r.hintFor(id); hint != "" {
		filtered, err := r.filterBySender(ctx, candidates, hint)
		if err != nil {
			return 0, false, err
		}
		// An over-eager hint must not hide the message: fall back to the
		// unfiltered pool when the filter empties it.
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	for _, seqNum := range pool {
		h, err := r.session.FetchFields(ctx, seqNum, []string{"Message-ID"})
		if err != nil {
			if IsTransport(err) {
				return 0, false, err
			}
			r.logger.Debug("candidate fetch failed", "seq", seqNum, "error", err)
			continue
		}
		value := h.Get("Message-ID")
		if strings.Contains(value, id.Bare()) || strings.Contains(value, id.Bracketed()) {
			return seqNum, true, nil
		}
	}
	return 0, false, nil
}

// filterBySender keeps candidates whose From header contains hint,
// case-insensitively. Fetch failures drop the candidate from the filtered
// set only; it stays reachable through the fallback pool.
func (r *Resolver) filterBySender(ctx context.Context, candidates []uint32, hint string) ([]uint32, error) {
	lowered := strings.ToLower(hint)
	var filtered []uint32
	for _, seqNum := range candidates {
		h, err := r.session.FetchFields(ctx, seqNum, hintFields)
		if err != nil {
			if IsTransport(err) {
				return nil, err
			}
			continue
		}
		if strings.Contains(strings.ToLower(h.Get("From")), lowered) {
			filtered = append(filtered, seqNum)
		}
	}
	return filtered, nil
}

func (r *Resolver) hintFor(id MessageID) string {
	if r.hint == nil {
		return ""
	}
	return r.hint(id)
}

// DomainHint returns a HintFunc that reports the identifier's own domain
// suffix when it matches one of domains. This generalizes the convention of
// certain providers whose generated identifiers carry the sending domain.
func DomainHint(domains []string) HintFunc {
	return func(id MessageID) string {
		d := id.Domain()
		if d == "" {
			return ""
		}
		for _, want := range domains {
			if strings.EqualFold(d, want) {
				return d
			}
		}
		return ""
	}
}
