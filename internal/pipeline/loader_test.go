package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

func writeDoc(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderReadsAndTrims(t *testing.T) {
	l := NewLoader(model.InputConfig{})
	path := writeDoc(t, []byte("\n  פרוטוקול ישיבת מועצה  \n"))

	text, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if text != "פרוטוקול ישיבת מועצה" {
		t.Errorf("text = %q", text)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(model.InputConfig{})
	if _, err := l.Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderEmptyDocument(t *testing.T) {
	l := NewLoader(model.InputConfig{})
	if _, err := l.Load(writeDoc(t, []byte("  \n\t "))); err == nil {
		t.Error("expected error for blank document")
	}
}

func TestLoaderSizeLimit(t *testing.T) {
	l := NewLoader(model.InputConfig{MaxBytes: 64})

	if _, err := l.Load(writeDoc(t, []byte(strings.Repeat("א", 100)))); err == nil {
		t.Error("expected error for oversized document")
	}
	if _, err := l.Load(writeDoc(t, []byte("פרוטוקול"))); err != nil {
		t.Errorf("small document rejected: %v", err)
	}
}

func TestLoaderRejectsBinary(t *testing.T) {
	l := NewLoader(model.InputConfig{})
	if _, err := l.Load(writeDoc(t, []byte{0xff, 0xfe, 0x00, 0x41})); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}
