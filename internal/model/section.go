package model

// SectionType identifies a top-level part of a protocol document
type SectionType string

const (
	SectionHeader      SectionType = "header"      // Municipality, committee, date
	SectionAttendees   SectionType = "attendees"   // Present council members
	SectionAbsent      SectionType = "absent"      // Absent members
	SectionStaff       SectionType = "staff"       // Municipal staff
	SectionAgenda      SectionType = "agenda"      // Agenda overview
	SectionDiscussions SectionType = "discussions" // Individual discussion items
	SectionUnknown     SectionType = "unknown"
)

// SectionInfo describes one detected section span
type SectionInfo struct {
	Type       SectionType `json:"type"`
	Start      int         `json:"start"`       // Byte offset of the section anchor
	End        int         `json:"end"`         // Byte offset of the next anchor or document end
	Text       string      `json:"text"`        // Section text, trimmed
	Confidence float64     `json:"confidence"`  // 0..1, from anchor pattern rank
	Reversed   bool        `json:"reversed"`    // Document-level reversal applied to this section
	Anchor     string      `json:"anchor"`      // The anchor text that matched
}

// DetectionResult holds all detected sections of one document
type DetectionResult struct {
	Sections   map[SectionType]SectionInfo `json:"sections"`
	Reversed   bool                        `json:"reversed"`   // Document stored in mirror order
	Confidence float64                     `json:"confidence"` // Mean of section confidences, 0 if none
}

// Section returns a detected section and whether it was found
func (r DetectionResult) Section(t SectionType) (SectionInfo, bool) {
	s, ok := r.Sections[t]
	return s, ok
}

// HasSection reports whether a section was detected
func (r DetectionResult) HasSection(t SectionType) bool {
	_, ok := r.Sections[t]
	return ok
}
