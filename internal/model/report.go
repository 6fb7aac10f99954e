package model

import "time"

// ConfidenceLevel grades how much of a record can be trusted as-is
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Signal is one diagnostic observation about an extraction
type Signal struct {
	Type    string `json:"type"`    // e.g. missing_header_date, no_discussions
	Level   string `json:"level"`   // info, warning
	Message string `json:"message"` // Human-readable, English
}

// Quality summarizes how complete and trustworthy a record is
type Quality struct {
	Index      int             `json:"index"` // 0-100
	Confidence ConfidenceLevel `json:"confidence"`
	Signals    []Signal        `json:"signals,omitempty"`
}

// Report is the full output of processing one document
type Report struct {
	Source      string         `json:"source"` // File path or "-" for stdin
	ExtractedAt time.Time      `json:"extracted_at"`
	Record      ProtocolRecord `json:"record"`
	Quality     Quality        `json:"quality"`
}
