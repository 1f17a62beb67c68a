package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ymatsuda/mailseek/internal/resolve"
)

func TestWriteCSV(t *testing.T) {
	results := []resolve.Result{
		{
			ID:      resolve.ParseMessageID("<found@example.com>"),
			Matched: true,
			Mailbox: "Archive",
			Tier:    resolve.TierExactHeader,
			SeqNum:  42,
			Header: resolve.Snapshot{
				From:    "Alice <alice@example.com>",
				To:      "bob@example.com",
				Subject: "quarterly, report", // embedded comma must survive quoting
				Date:    "Tue, 13 Feb 2024 21:21:26 +0900",
			},
		},
		{ID: resolve.ParseMessageID("missing@example.com")},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}

	want := [][]string{
		{"message_id", "mailbox", "seqnum", "from", "to", "subject", "date"},
		{"found@example.com", "Archive", "42", "Alice <alice@example.com>", "bob@example.com", "quarterly, report", "Tue, 13 Feb 2024 21:21:26 +0900"},
		{"missing@example.com", "", "", "", "", "", ""},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want header only", len(records))
	}
}
