package resolve

import (
	"context"
	"log/slog"
)

// HintFunc derives an optional sender-domain hint from an identifier. The
// hint narrows the time-window candidate pool; returning "" disables the
// narrowing for that identifier.
type HintFunc func(MessageID) string

// Option is a functional option for Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithHint sets the sender-domain hint derivation.
func WithHint(fn HintFunc) Option {
	return func(r *Resolver) { r.hint = fn }
}

// WithActiveMailbox sets the mailbox the scan plan starts from. Defaults to
// INBOX.
func WithActiveMailbox(name string) Option {
	return func(r *Resolver) { r.active = name }
}

// Resolver runs the tiered search for identifiers over a single mailbox
// session. It scans exactly one mailbox at a time, in plan order, and stops
// at the first match, so every reported match names exactly one mailbox and
// one tier.
type Resolver struct {
	session   Session
	mailboxes []string
	active    string
	logger    *slog.Logger
	hint      HintFunc
}

// New creates a Resolver over session. mailboxes is the enumerated list of
// selectable mailbox names the scan plan draws from.
func New(session Session, mailboxes []string, opts ...Option) *Resolver {
	r := &Resolver{
		session:   session,
		mailboxes: mailboxes,
		active:    "INBOX",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates rawID, visiting mailboxes in plan order until a tier
// matches or the plan is exhausted. An exhausted plan is a valid negative
// outcome, not an error; the returned error is non-nil only when the
// session transport failed or ctx was cancelled, in which case the Result
// is not meaningful.
func (r *Resolver) Resolve(ctx context.Context, rawID string) (Result, error) {
	id := ParseMessageID(rawID)
	plan := BuildPlan(r.active, r.mailboxes)
	r.logger.Debug("resolving identifier", "id", id.Bare(), "mailboxes", len(plan))

	for _, mailbox := range plan {
		if err := ctx.Err(); err != nil {
			return Result{ID: id}, err
		}
		if err := r.session.Select(ctx, mailbox); err != nil {
			if IsTransport(err) {
				return Result{ID: id}, err
			}
			// Vanished or permission-denied mailboxes are skipped, never
			// fatal to the resolution.
			r.logger.Warn("skipping mailbox", "mailbox", mailbox, "error", err)
			continue
		}

		seqNum, tier, err := r.searchSelected(ctx, id)
		if err != nil {
			return Result{ID: id}, err
		}
		if tier == TierNone {
			continue
		}

		r.logger.Debug("matched", "id", id.Bare(), "mailbox", mailbox, "tier", tier, "seq", seqNum)
		return Result{
			ID:      id,
			Matched: true,
			Mailbox: mailbox,
			Tier:    tier,
			SeqNum:  seqNum,
			Header:  r.snapshot(ctx, seqNum),
		}, nil
	}

	return Result{ID: id}, nil
}

// ResolveAll resolves identifiers one after another over the same session,
// producing one Result per identifier in input order. A transport failure
// aborts the batch and returns the results completed so far; any other
// failure is contained to its identifier.
func (r *Resolver) ResolveAll(ctx context.Context, rawIDs []string) ([]Result, error) {
	results := make([]Result, 0, len(rawIDs))
	for _, rawID := range rawIDs {
		res, err := r.Resolve(ctx, rawID)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// searchSelected runs the tier ladder against the currently selected
// mailbox: the exact-header and reference-chain attempts first, then the
// time-window scan. A failed attempt is skipped, not fatal, unless the
// transport itself died.
func (r *Resolver) searchSelected(ctx context.Context, id MessageID) (uint32, Tier, error) {
	for _, att := range headerAttempts(id) {
		seqNums, err := r.session.SearchHeader(ctx, att.q)
		if err != nil {
			if IsTransport(err) {
				return 0, TierNone, err
			}
			r.logger.Debug("search attempt failed",
				"field", att.q.Field, "encoding", att.q.Encoding, "error", err)
			continue
		}
		if len(seqNums) > 0 {
			return seqNums[0], att.tier, nil
		}
	}

	seqNum, ok, err := r.scanWindow(ctx, id)
	if err != nil {
		return 0, TierNone, err
	}
	if ok {
		return seqNum, TierTimeWindow, nil
	}
	return 0, TierNone, nil
}

// snapshot fetches the reporting headers for a confirmed match. Fetch
// failures degrade to an empty snapshot; the match itself stands.
func (r *Resolver) snapshot(ctx context.Context, seqNum uint32) Snapshot {
	h, err := r.session.FetchFields(ctx, seqNum, snapshotFields)
	if err != nil {
		r.logger.Warn("fetching match headers failed", "seq", seqNum, "error", err)
		return Snapshot{}
	}
	return snapshotFromHeader(h)
}
