package section

import (
	"strings"
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

const sampleProtocol = `פרוטוקול ישיבת מועצה מס' 12
עיריית יהוד-מונוסון

נוכחים:
דוד כהן - ראש העיר
רחל אברמוב - חברת מועצה

נעדרים:
משה בן דוד

סדר היום:
אישור תקציב

סעיף 1: אישור תקציב
הוחלט: התקציב התקבל`

func TestDetectSectionsNormalDocument(t *testing.T) {
	d := NewDetector()
	result := d.Detect(sampleProtocol)

	if result.Reversed {
		t.Error("normal document detected as reversed")
	}
	for _, typ := range []model.SectionType{
		model.SectionHeader,
		model.SectionAttendees,
		model.SectionAbsent,
		model.SectionAgenda,
		model.SectionDiscussions,
	} {
		if !result.HasSection(typ) {
			t.Errorf("section %s not detected", typ)
		}
	}

	header, _ := result.Section(model.SectionHeader)
	if header.Start != 0 {
		t.Errorf("header starts at %d, want 0", header.Start)
	}

	attendees, _ := result.Section(model.SectionAttendees)
	if !strings.Contains(attendees.Text, "דוד כהן") {
		t.Errorf("attendees section missing roster line: %q", attendees.Text)
	}
	if strings.Contains(attendees.Text, "נעדרים") {
		t.Errorf("attendees section bleeds into absent: %q", attendees.Text)
	}
}

func TestDetectConfidenceFromAnchorRank(t *testing.T) {
	d := NewDetector()
	result := d.Detect(sampleProtocol)

	// נוכחים is the first (rank 0) attendees pattern
	attendees, _ := result.Section(model.SectionAttendees)
	if attendees.Confidence != 1.0 {
		t.Errorf("attendees confidence = %v, want 1.0", attendees.Confidence)
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("document confidence out of range: %v", result.Confidence)
	}
}

func TestDetectDirectionReversed(t *testing.T) {
	d := NewDetector()
	mirrored := "לוקוטורפ\nםיחכונ\nםירדענ"

	reversed, confidence := d.DetectDirection(mirrored)
	if !reversed {
		t.Fatal("mirror-ordered document not detected")
	}
	if confidence <= 0 {
		t.Errorf("confidence = %v, want > 0", confidence)
	}

	result := d.Detect(mirrored)
	if !result.Reversed {
		t.Error("Detect did not mark document reversed")
	}
	if !result.HasSection(model.SectionAttendees) {
		t.Error("reversed attendees anchor not found")
	}
}

func TestDetectEmptyDocument(t *testing.T) {
	d := NewDetector()
	result := d.Detect("   ")
	if len(result.Sections) != 0 {
		t.Errorf("sections found in empty document: %v", result.Sections)
	}
	if result.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", result.Confidence)
	}
}

func TestDiscussionPositions(t *testing.T) {
	d := NewDetector()
	text := "סעיף 1: נושא ראשון כלשהו עם טקסט ארוך מספיק כדי להפריד בין סימנים\nסעיף 2: נושא שני"

	marks := d.DiscussionPositions(text)
	if len(marks) != 2 {
		t.Fatalf("got %d marks, want 2", len(marks))
	}
	if marks[0].Number != "1" || marks[1].Number != "2" {
		t.Errorf("mark numbers = %q, %q", marks[0].Number, marks[1].Number)
	}
	if marks[0].Pos >= marks[1].Pos {
		t.Error("marks not sorted by position")
	}
}
