package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ymatsuda/mailseek/internal/export"
	"github.com/ymatsuda/mailseek/internal/imapx"
	"github.com/ymatsuda/mailseek/internal/mime"
	"github.com/ymatsuda/mailseek/internal/resolve"
)

var (
	resolveIDsFile  string
	resolveOut      string
	resolveMailbox  string
	resolveTimeout  time.Duration
	resolveShowBody bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [message-id]...",
	Short: "Locate messages by Message-ID and export matches to CSV",
	Long: `Resolve one or more Message-IDs against an IMAP account.

For each identifier, mailseek scans mailboxes in priority order (the active
mailbox first, then Trash/Junk/Spam/Sent/Drafts/Archive and their Gmail
aliases, then everything else) and stops at the first mailbox that matches.
Within a mailbox it tries an exact Message-ID header search, then the
References/In-Reply-To ancestry headers, and finally a date-window scan
when the identifier embeds a creation timestamp.

Identifiers may be given with or without angle brackets.

Examples:
  mailseek resolve --provider gmail -u info@example.com 20240213212126.4429A1@gmail.com
  mailseek resolve --host mail.example.com -u info@example.com --ids-file ids.txt --out found.csv`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := loadIDs(args, resolveIDsFile)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("no Message-IDs given: pass them as arguments or via --ids-file")
		}

		imapCfg, err := imapConfig()
		if err != nil {
			return err
		}
		password, err := readPassword(imapCfg.Username, imapCfg.Host)
		if err != nil {
			return err
		}

		out := resolveOut
		if out == "" {
			out = cfg.Resolve.Out
		}
		timeout := resolveTimeout
		if timeout == 0 {
			timeout = time.Duration(cfg.IMAP.TimeoutSeconds) * time.Second
		}

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		progress := isatty.IsTerminal(os.Stdout.Fd())

		fmt.Fprintf(os.Stderr, "Connecting to %s as %s ...\n", imapCfg.Addr(), imapCfg.Username)
		session, err := imapx.Dial(imapCfg, password, imapx.WithLogger(logger))
		if err != nil {
			return err
		}
		defer session.Close()

		mailboxes, err := session.SelectableMailboxes(ctx)
		if err != nil {
			return fmt.Errorf("list mailboxes: %w", err)
		}

		opts := []resolve.Option{
			resolve.WithLogger(logger),
			resolve.WithHint(resolve.DomainHint(cfg.Resolve.HintDomains)),
		}
		if resolveMailbox != "" {
			opts = append(opts, resolve.WithActiveMailbox(resolveMailbox))
		}
		resolver := resolve.New(session, mailboxes, opts...)

		start := time.Now()
		results := make([]resolve.Result, 0, len(ids))
		found := 0
		for _, rawID := range ids {
			if progress {
				fmt.Printf("== Searching Message-ID: %s ==\n", resolve.ParseMessageID(rawID))
			}
			res, err := resolver.Resolve(ctx, rawID)
			if err != nil {
				// Transport failures abort the batch; what resolved so far
				// is still exported below.
				writeErr := writeResults(out, results)
				if writeErr != nil {
					logger.Warn("partial CSV export failed", "error", writeErr)
				}
				return fmt.Errorf("resolution aborted: %w", err)
			}
			results = append(results, res)

			if res.Matched {
				found++
				fmt.Printf("  %s: seq %d | tier %s | %s | %s\n",
					res.Mailbox, res.SeqNum, res.Tier, res.Header.Date, res.Header.Subject)
				if resolveShowBody {
					showMatch(ctx, session, res)
				}
			} else if progress {
				fmt.Println("  (not found)")
			}
		}

		if err := writeResults(out, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Done. %d of %d matched in %s. CSV -> %s\n",
			found, len(results), time.Since(start).Round(time.Second), out)
		return nil
	},
}

// loadIDs merges positional identifiers with the --ids-file contents and
// removes duplicates preserving first-seen order.
func loadIDs(args []string, path string) ([]string, error) {
	ids := append([]string(nil), args...)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open ids file: %w", err)
		}
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				ids = append(ids, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read ids file: %w", err)
		}
	}

	seen := make(map[string]bool, len(ids))
	uniq := ids[:0]
	for _, raw := range ids {
		id := resolve.ParseMessageID(raw)
		if id.IsZero() || seen[id.Bare()] {
			continue
		}
		seen[id.Bare()] = true
		uniq = append(uniq, raw)
	}
	return uniq, nil
}

func writeResults(path string, results []resolve.Result) error {
	if len(results) == 0 {
		return nil
	}
	if err := export.WriteFile(path, results); err != nil {
		return fmt.Errorf("export CSV: %w", err)
	}
	return nil
}

// showMatch fetches and prints the matched message's decoded details. A
// fetch or parse failure only degrades the display; the match stands.
func showMatch(ctx context.Context, session *imapx.Session, res resolve.Result) {
	// The sequence number is only valid in the mailbox it matched in.
	if session.Selected() != res.Mailbox {
		if err := session.Select(ctx, res.Mailbox); err != nil {
			logger.Warn("reselecting mailbox failed", "mailbox", res.Mailbox, "error", err)
			return
		}
	}
	raw, err := session.FetchFullMessage(ctx, res.SeqNum)
	if err != nil {
		logger.Warn("fetching full message failed", "seq", res.SeqNum, "error", err)
		return
	}
	msg, err := mime.Parse(raw)
	if err != nil {
		logger.Warn("parsing message failed", "seq", res.SeqNum, "error", err)
		return
	}
	fmt.Printf("    Subject: %s\n", msg.Subject)
	fmt.Printf("    From:    %s\n", msg.FirstFrom())
	fmt.Printf("    Date:    %s\n", msg.RawDate)
	if snippet := msg.Snippet(200); snippet != "" {
		fmt.Printf("    Body:    %s\n", snippet)
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addConnectionFlags(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveIDsFile, "ids-file", "", "file with one Message-ID per line")
	resolveCmd.Flags().StringVar(&resolveOut, "out", "", "output CSV path (default from config)")
	resolveCmd.Flags().StringVar(&resolveMailbox, "mailbox", "", "mailbox to search first (default INBOX)")
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", 0, "overall deadline for the run (default from config)")
	resolveCmd.Flags().BoolVar(&resolveShowBody, "show-body", false, "fetch and display each matched message")
}
