package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/civicdata-il/protokol/internal/model"
)

// Loader reads OCR text documents from disk or stdin and applies input
// bounds before any extraction work starts.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader from input bounds
func NewLoader(cfg model.InputConfig) *Loader {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Loader{maxBytes: maxBytes}
}

// Load reads the document at path; "-" reads stdin. Input is bounded by
// the configured byte limit and must be valid UTF-8.
func (l *Loader) Load(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return "", fmt.Errorf("document exceeds %d bytes", l.maxBytes)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid UTF-8")
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("document is empty")
	}
	return text, nil
}
