package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ids.txt")
	content := "a@example.com\n\n<b@example.com>\nb@example.com\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := loadIDs([]string{"<a@example.com>", "c@example.com"}, path)
	if err != nil {
		t.Fatalf("loadIDs() error = %v", err)
	}
	// Duplicates collapse on the normalized form, first spelling wins.
	want := []string{"<a@example.com>", "c@example.com", "<b@example.com>"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIDsNoFile(t *testing.T) {
	got, err := loadIDs([]string{"x@example.com"}, "")
	if err != nil {
		t.Fatalf("loadIDs() error = %v", err)
	}
	if len(got) != 1 || got[0] != "x@example.com" {
		t.Errorf("loadIDs() = %v", got)
	}
}

func TestLoadIDsSkipsEmptyIdentifiers(t *testing.T) {
	got, err := loadIDs([]string{"<>", "  ", "x@example.com"}, "")
	if err != nil {
		t.Fatalf("loadIDs() error = %v", err)
	}
	want := []string{"x@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIDsMissingFile(t *testing.T) {
	if _, err := loadIDs(nil, filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Errorf("loadIDs() error = nil, want open failure")
	}
}
