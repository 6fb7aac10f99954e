package format

import (
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

func TestYehudExtractHeader(t *testing.T) {
	f := NewYehudFormat(nil)
	header := f.ExtractHeader("עיריית יהוד-מונוסון\nפרוטוקול מס' 12 ישיבת מליאת המועצה\nישיבה שלא מן המניין מיום 15.3.2024")

	if header.Municipality != "יהוד-מונוסון" {
		t.Errorf("municipality = %q", header.Municipality)
	}
	if header.MeetingNumber != 12 {
		t.Errorf("meeting number = %d, want 12", header.MeetingNumber)
	}
	if header.MeetingDate != "2024-03-15" {
		t.Errorf("meeting date = %q, want 2024-03-15", header.MeetingDate)
	}
	if header.CommitteeName != "מליאת המועצה" {
		t.Errorf("committee = %q", header.CommitteeName)
	}
	if header.MeetingType != "שלא מן המניין" {
		t.Errorf("meeting type = %q", header.MeetingType)
	}
	if header.Confidence < 0.95 {
		t.Errorf("confidence = %v, want near 1.0 with all fields found", header.Confidence)
	}
}

func TestYehudExtractHeaderMirroredNumber(t *testing.T) {
	f := NewYehudFormat(nil)
	header := f.ExtractHeader("ןוסונומ-דוהי תייריע\n12 'סמ לוקוטורפ")

	if header.MeetingNumber != 12 {
		t.Errorf("meeting number = %d, want 12 from mirrored phrasing", header.MeetingNumber)
	}
}

func TestYehudExtractVoteCounted(t *testing.T) {
	f := NewYehudFormat(nil)
	vote := f.ExtractVote("הצבעה: בעד: 6 נגד: 1")

	if vote == nil {
		t.Fatal("expected a vote")
	}
	if vote.Type != model.VoteCounted {
		t.Errorf("type = %s, want counted", vote.Type)
	}
	if vote.Yes != 6 || vote.No != 1 || vote.Abstain != 0 {
		t.Errorf("counts = %d/%d/%d, want 6/1/0", vote.Yes, vote.No, vote.Abstain)
	}
	if vote.Total != 7 {
		t.Errorf("total = %d, want 7", vote.Total)
	}
	if vote.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", vote.Confidence)
	}
}

func TestYehudExtractVoteUnanimous(t *testing.T) {
	f := NewYehudFormat(nil)
	vote := f.ExtractVote("ההצעה אושרה פה אחד")

	if vote == nil || vote.Type != model.VoteUnanimous {
		t.Fatalf("vote = %+v, want unanimous", vote)
	}
	if vote.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", vote.Confidence)
	}
}

// Approved patterns run before rejected ones, so אושר inside לא אושר
// resolves in the approved pass; plain נדחה still reaches rejected.
func TestYehudExtractDecisionChecklistOrder(t *testing.T) {
	f := NewYehudFormat(nil)

	decision := f.ExtractDecision("התב\"ר לא אושר על ידי המליאה")
	if decision == nil || decision.Status != model.DecisionApproved {
		t.Fatalf("decision = %+v, want approved from first matching pass", decision)
	}

	decision = f.ExtractDecision("התב\"ר נדחה על ידי המליאה")
	if decision == nil || decision.Status != model.DecisionRejected {
		t.Fatalf("decision = %+v, want rejected", decision)
	}
}

func TestYehudExtractDiscussions(t *testing.T) {
	f := NewYehudFormat(nil)
	text := "סעיף 1: אישור תב\"ר 450 לשיפוץ בית ספר\nהצבעה: בעד: 6 נגד: 1\nהחלטה: אושר\n\nסעיף 2: דיווח ראש העיר\nלידיעה\n"

	items := f.ExtractDiscussions(text)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	if items[0].Number != "1" {
		t.Errorf("item 1 number = %q", items[0].Number)
	}
	if items[0].Vote == nil || items[0].Vote.Yes != 6 || items[0].Vote.No != 1 {
		t.Errorf("item 1 vote = %+v, want 6 for 1 against", items[0].Vote)
	}
	if items[0].Decision == nil || items[0].Decision.Status != model.DecisionApproved {
		t.Errorf("item 1 decision = %+v, want approved", items[0].Decision)
	}

	if items[1].Number != "2" {
		t.Errorf("item 2 number = %q", items[1].Number)
	}
	if items[1].Vote != nil {
		t.Errorf("item 2 vote = %+v, want none", items[1].Vote)
	}
	if items[1].Decision == nil || items[1].Decision.Status != model.DecisionInformational {
		t.Errorf("item 2 decision = %+v, want informational", items[1].Decision)
	}
}

func TestYehudExtractDiscussionsFallback(t *testing.T) {
	f := NewYehudFormat(nil)

	// No סעיף markers at all; bare numbered sections still segment
	items := f.ExtractDiscussions("1. אישור פרוטוקול קודם\nאושר פה אחד\n2. שונות")
	if len(items) == 0 {
		t.Fatal("fallback segmentation produced no items")
	}
	if items[0].Confidence != 0.4 {
		t.Errorf("fallback confidence = %v, want 0.4", items[0].Confidence)
	}
}
