package section

import (
	"regexp"
	"sort"
)

// ItemMark is one discussion-item marker occurrence
type ItemMark struct {
	Pos    int    // Byte offset in the document
	Number string // Item number, "" when the marker carried none
}

var itemMarksNormal = []*regexp.Regexp{
	regexp.MustCompile(`(?m)סעיף\s*(?:מס['׳]?|מספר)?\s*(\d+)`),
	regexp.MustCompile(`(?m)נושא\s*(?:מס['׳]?|מספר)?\s*(\d+)`),
	regexp.MustCompile(`(?m)^(\d+)\s*[\.:\-]\s*`),
}

var itemMarksReversed = []*regexp.Regexp{
	regexp.MustCompile(`(?m)(\d+)\s*['׳]?סמ\s*ףיעס`),
	regexp.MustCompile(`(?m)(\d+)\s*אשונ`),
}

// DiscussionPositions finds all agenda-item markers in a document, in either
// orientation, sorted and with near-duplicates (OCR echoes within 50 bytes)
// collapsed.
func (d *Detector) DiscussionPositions(text string) []ItemMark {
	reversed, _ := d.DetectDirection(text)

	patterns := itemMarksNormal
	if reversed {
		patterns = itemMarksReversed
	}

	var marks []ItemMark
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			num := ""
			if m[2] >= 0 {
				num = text[m[2]:m[3]]
			}
			marks = append(marks, ItemMark{Pos: m[0], Number: num})
		}
	}

	sort.Slice(marks, func(i, j int) bool { return marks[i].Pos < marks[j].Pos })

	var filtered []ItemMark
	for _, m := range marks {
		if len(filtered) == 0 || m.Pos-filtered[len(filtered)-1].Pos > 50 {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
