// Package section locates the top-level spans of a municipal protocol
// document (header, rosters, agenda, discussions) by anchor matching.
// Anchors exist in two orientations because OCR sometimes stores whole
// documents in mirror order; a direction vote picks the orientation before
// boundaries are computed.
package section

import (
	"regexp"
	"sort"
	"strings"

	"github.com/civicdata-il/protokol/internal/model"
)

// Anchor pattern sets, priority ordered: earlier patterns are more specific
// and score higher.
var anchorsNormal = map[model.SectionType][]string{
	model.SectionHeader: {
		`פרוטוקול`,
		`ישיבת\s*(מועצה|ועדה)`,
		`מועצת\s*(העיר|המקומית)`,
		`עיריית`,
		`מועצה\s*מקומית`,
	},
	model.SectionAttendees: {
		`נוכחים`,
		`משתתפים`,
		`חברי\s*(המועצה|הועדה)\s*הנוכחים`,
		`נכחו`,
		`השתתפו`,
	},
	model.SectionAbsent: {
		`נעדרים`,
		`חסרים`,
		`לא\s*נכחו`,
		`חברים\s*שנעדרו`,
	},
	model.SectionStaff: {
		`סגל`,
		`אנשי\s*מקצוע`,
		`נוכחים\s*נוספים`,
		`משתתפים\s*נוספים`,
		`עובדי\s*(העירייה|הרשות)`,
	},
	model.SectionAgenda: {
		`סדר\s*היום`,
		`על\s*סדר\s*היום`,
		`נושאים\s*לדיון`,
	},
	model.SectionDiscussions: {
		`סעיף\s*(מס['׳]?|מספר)?\s*\d+`,
		`סעיף\s+[א-ת]`,
		`נושא\s*(מס['׳]?|מספר)?\s*\d+`,
	},
}

var anchorsReversed = map[model.SectionType][]string{
	model.SectionHeader: {
		`לוקוטורפ`,
		`תבשי`,
		`תייריע`,
		`הצעומ`,
	},
	model.SectionAttendees: {
		`םיחכונ`,
		`םיפתתשמ`,
		`וחכנ`,
	},
	model.SectionAbsent: {
		`םירדענ`,
		`םירסח`,
	},
	model.SectionStaff: {
		`לגס`,
		`םיפסונ\s*םיחכונ`,
	},
	model.SectionAgenda: {
		`םויה\s*רדס`,
		`ןויד[ל]?\s*םיאשונ`,
	},
	model.SectionDiscussions: {
		`\d+\s*['׳]?סמ\s*ףיעס`,
		`ףיעס`,
	},
}

// Detector finds section boundaries. Safe for concurrent use; all state is
// compiled patterns.
type Detector struct {
	normal   map[model.SectionType][]*regexp.Regexp
	reversed map[model.SectionType][]*regexp.Regexp
}

// NewDetector compiles both anchor pattern sets
func NewDetector() *Detector {
	return &Detector{
		normal:   compileAnchors(anchorsNormal),
		reversed: compileAnchors(anchorsReversed),
	}
}

func compileAnchors(tables map[model.SectionType][]string) map[model.SectionType][]*regexp.Regexp {
	out := make(map[model.SectionType][]*regexp.Regexp, len(tables))
	for typ, patterns := range tables {
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			compiled = append(compiled, regexp.MustCompile(`(?im)`+p))
		}
		out[typ] = compiled
	}
	return out
}

// DetectDirection votes on document orientation by counting anchor hits in
// both pattern sets. Header hits weigh double. Confidence is the normalized
// margin, 0 when nothing matched.
func (d *Detector) DetectDirection(text string) (bool, float64) {
	var normalHits, reversedHits int

	weights := map[model.SectionType]int{
		model.SectionHeader:      2,
		model.SectionAttendees:   1,
		model.SectionDiscussions: 1,
	}

	for typ, weight := range weights {
		for _, re := range d.normal[typ] {
			if re.MatchString(text) {
				normalHits += weight
			}
		}
		for _, re := range d.reversed[typ] {
			if re.MatchString(text) {
				reversedHits += weight
			}
		}
	}

	total := normalHits + reversedHits
	if total == 0 {
		return false, 0
	}

	diff := normalHits - reversedHits
	if diff < 0 {
		diff = -diff
	}
	return reversedHits > normalHits, float64(diff) / float64(total)
}

type anchorHit struct {
	pos        int
	text       string
	confidence float64
}

func (d *Detector) findAnchors(text string, useReversed bool) map[model.SectionType][]anchorHit {
	patterns := d.normal
	if useReversed {
		patterns = d.reversed
	}

	results := make(map[model.SectionType][]anchorHit)
	for typ, list := range patterns {
		var hits []anchorHit
		for rank, re := range list {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				hits = append(hits, anchorHit{
					pos:        loc[0],
					text:       text[loc[0]:loc[1]],
					confidence: 1.0 - float64(rank)*0.1,
				})
			}
		}
		if len(hits) > 0 {
			sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
			results[typ] = hits
		}
	}
	return results
}

// Detect runs one full detection pass over a document.
func (d *Detector) Detect(text string) model.DetectionResult {
	result := model.DetectionResult{Sections: map[model.SectionType]model.SectionInfo{}}

	if strings.TrimSpace(text) == "" {
		return result
	}

	reversed, _ := d.DetectDirection(text)

	anchors := d.findAnchors(text, reversed)
	if len(anchors) == 0 {
		// Direction vote can be wrong on sparse documents; try the other set
		reversed = !reversed
		anchors = d.findAnchors(text, reversed)
	}

	result.Reversed = reversed
	result.Sections = boundaries(text, anchors, reversed)

	if len(result.Sections) > 0 {
		var sum float64
		for _, s := range result.Sections {
			sum += s.Confidence
		}
		result.Confidence = sum / float64(len(result.Sections))
	}

	return result
}

// boundaries assigns each section the span from its first anchor to the next
// section's anchor (document end for the last). Boundaries come purely from
// observed positions; out-of-order or repeated sections are not corrected.
func boundaries(text string, anchors map[model.SectionType][]anchorHit, reversed bool) map[model.SectionType]model.SectionInfo {
	type firstAnchor struct {
		typ model.SectionType
		hit anchorHit
	}

	firsts := make([]firstAnchor, 0, len(anchors))
	for typ, hits := range anchors {
		firsts = append(firsts, firstAnchor{typ: typ, hit: hits[0]})
	}
	sort.Slice(firsts, func(i, j int) bool { return firsts[i].hit.pos < firsts[j].hit.pos })

	sections := make(map[model.SectionType]model.SectionInfo, len(firsts))
	for i, fa := range firsts {
		end := len(text)
		if i+1 < len(firsts) {
			end = firsts[i+1].hit.pos
		}

		sections[fa.typ] = model.SectionInfo{
			Type:       fa.typ,
			Start:      fa.hit.pos,
			End:        end,
			Text:       strings.TrimSpace(text[fa.hit.pos:end]),
			Confidence: fa.hit.confidence,
			Reversed:   reversed,
			Anchor:     fa.hit.text,
		}
	}
	return sections
}
