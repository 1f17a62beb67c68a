// Package export writes resolution results as tabular records.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ymatsuda/mailseek/internal/resolve"
)

// columns is the fixed CSV layout. Unmatched identifiers still produce a
// row, with only message_id populated.
var columns = []string{"message_id", "mailbox", "seqnum", "from", "to", "subject", "date"}

// WriteCSV writes a header row followed by one row per result.
func WriteCSV(w io.Writer, results []resolve.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, res := range results {
		if err := cw.Write(row(res)); err != nil {
			return fmt.Errorf("write CSV row for %s: %w", res.ID.Bare(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the results to path, truncating any existing file.
func WriteFile(path string, results []resolve.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func row(res resolve.Result) []string {
	if !res.Matched {
		return []string{res.ID.Bare(), "", "", "", "", "", ""}
	}
	return []string{
		res.ID.Bare(),
		res.Mailbox,
		strconv.FormatUint(uint64(res.SeqNum), 10),
		res.Header.From,
		res.Header.To,
		res.Header.Subject,
		res.Header.Date,
	}
}
