package format

import (
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

func TestDefaultVoteUnanimous(t *testing.T) {
	vote := DefaultVote("ההצעה אושרה פה אחד")
	if vote == nil {
		t.Fatal("expected a vote")
	}
	if vote.Type != model.VoteUnanimous {
		t.Errorf("type = %s, want unanimous", vote.Type)
	}
	if vote.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", vote.Confidence)
	}
}

func TestDefaultVoteCounted(t *testing.T) {
	vote := DefaultVote("הצבעה: 5 בעד, 2 נגד, 1 נמנע")
	if vote == nil {
		t.Fatal("expected a vote")
	}
	if vote.Type != model.VoteCounted {
		t.Errorf("type = %s, want counted", vote.Type)
	}
	if vote.Yes != 5 || vote.No != 2 || vote.Abstain != 1 {
		t.Errorf("counts = %d/%d/%d, want 5/2/1", vote.Yes, vote.No, vote.Abstain)
	}
	if vote.Total != 8 {
		t.Errorf("total = %d, want 8", vote.Total)
	}
}

func TestDefaultVoteAbsent(t *testing.T) {
	if vote := DefaultVote("דיון כללי ללא הכרעה"); vote != nil {
		t.Errorf("expected nil vote, got %+v", vote)
	}
	if vote := DefaultVote(""); vote != nil {
		t.Error("expected nil vote for empty text")
	}
}

func TestDefaultDecisionApproved(t *testing.T) {
	decision := DefaultDecision("החלטה: אושר תקציב הפיתוח לשנת 2024")
	if decision == nil {
		t.Fatal("expected a decision")
	}
	if decision.Status != model.DecisionApproved {
		t.Errorf("status = %s, want approved", decision.Status)
	}
	if decision.Text != "אושר תקציב הפיתוח לשנת 2024" {
		t.Errorf("text = %q", decision.Text)
	}
	if decision.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", decision.Confidence)
	}
}

// The keyword sets are checked as a fixed checklist, approved first, and
// the first match wins even when a later set holds a longer phrase.
func TestDefaultDecisionChecklistOrder(t *testing.T) {
	cases := []struct {
		text string
		want model.DecisionStatus
	}{
		// אושר inside לא אושר resolves in the approved pass
		{"הוחלט: לא אושר התקציב המוצע", model.DecisionApproved},
		// נדחה inside נדחה לישיבה resolves in the rejected pass
		{"הנושא נדחה לישיבה הבאה", model.DecisionRejected},
		{"הנושא יידון בישיבה הקרובה", model.DecisionDeferred},
	}
	for _, tc := range cases {
		decision := DefaultDecision(tc.text)
		if decision == nil {
			t.Fatalf("DefaultDecision(%q) = nil", tc.text)
		}
		if decision.Status != tc.want {
			t.Errorf("DefaultDecision(%q) status = %s, want %s", tc.text, decision.Status, tc.want)
		}
	}
}

func TestDefaultDecisionAbsent(t *testing.T) {
	if d := DefaultDecision("דיון פתוח ללא כל הכרעה"); d != nil {
		t.Errorf("expected nil decision, got %+v", d)
	}
}

func TestNormalizeText(t *testing.T) {
	got := NormalizeText("שורה  עם   רווחים\n\n\n\nפסקה שניה ")
	want := "שורה עם רווחים\n\nפסקה שניה"
	if got != want {
		t.Errorf("NormalizeText = %q, want %q", got, want)
	}
}

func TestParseRoster(t *testing.T) {
	text := "נוכחים:\nדוד כהן - ראש העיר\nמר יוסי לוי - חבר מועצה\nאב\n"

	attendees := parseRoster(text, genericRoles, model.AttendancePresent)
	if len(attendees) != 2 {
		t.Fatalf("got %d attendees, want 2", len(attendees))
	}

	if attendees[0].Name != "דוד כהן" || attendees[0].Role != "ראש העיר" {
		t.Errorf("first attendee = %q / %q", attendees[0].Name, attendees[0].Role)
	}
	// Honorific stripped
	if attendees[1].Name != "יוסי לוי" {
		t.Errorf("second attendee name = %q, want יוסי לוי", attendees[1].Name)
	}
	for _, a := range attendees {
		if a.Attendance != model.AttendancePresent {
			t.Errorf("attendance = %s, want present", a.Attendance)
		}
		if a.Confidence != 0.7 {
			t.Errorf("confidence = %v, want 0.7 for role-bearing line", a.Confidence)
		}
	}
}

func TestParseAttendeeLineReversed(t *testing.T) {
	a, ok := parseAttendeeLine("ריעה שאר - ןהכ דוד", genericRoles, model.AttendancePresent)
	if !ok {
		t.Fatal("reversed line rejected")
	}
	if !a.Reversed {
		t.Error("Reversed flag not set")
	}
	if a.Name != "דוד כהן" {
		t.Errorf("name = %q, want דוד כהן", a.Name)
	}
	if a.Role != "ראש העיר" {
		t.Errorf("role = %q, want ראש העיר", a.Role)
	}
}

func TestParseAttendeeLineNoSeparator(t *testing.T) {
	a, ok := parseAttendeeLine("גזבר משה גרין", genericRoles, model.AttendanceStaff)
	if !ok {
		t.Fatal("line rejected")
	}
	if a.Role != "גזבר" {
		t.Errorf("role = %q, want גזבר", a.Role)
	}
	if a.Name != "משה גרין" {
		t.Errorf("name = %q, want משה גרין", a.Name)
	}
}

func TestParseAttendeeLineRejectsShortName(t *testing.T) {
	if _, ok := parseAttendeeLine("מר א", genericRoles, model.AttendancePresent); ok {
		t.Error("single-letter name should be rejected")
	}
}
