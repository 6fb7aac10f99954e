package discussion

import (
	"context"
	"math"
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
)

const twoItemSection = "סעיף 1: אישור תקציב 2024 לפעילות שוטפת\nהצבעה: 5 בעד, 2 נגד\nהחלטה: אושר\n\nסעיף 2: דיווח ראש העיר\nלידיעה"

func TestExtractAllSegmentation(t *testing.T) {
	e := NewExtractor(nil)

	items := e.ExtractAll(context.Background(), twoItemSection)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Number != "1" {
		t.Errorf("first number = %q", first.Number)
	}
	if first.Title != "אישור תקציב 2024 לפעילות שוטפת" {
		t.Errorf("first title = %q", first.Title)
	}
	if first.Vote == nil || first.Vote.Yes != 5 || first.Vote.No != 2 {
		t.Errorf("first vote = %+v, want 5 for 2 against", first.Vote)
	}
	if first.Decision == nil || first.Decision.Status != model.DecisionApproved {
		t.Errorf("first decision = %+v, want approved", first.Decision)
	}
	if first.Decision != nil && first.Decision.Text != "אושר" {
		t.Errorf("first decision text = %q", first.Decision.Text)
	}
	if math.Abs(first.Confidence-0.9) > 1e-9 {
		t.Errorf("first confidence = %v, want 0.9", first.Confidence)
	}

	second := items[1]
	if second.Number != "2" {
		t.Errorf("second number = %q", second.Number)
	}
	if second.Title != "דיווח ראש העיר" {
		t.Errorf("second title = %q", second.Title)
	}
	if second.Vote != nil {
		t.Errorf("second vote = %+v, want none", second.Vote)
	}
	if second.Decision == nil || second.Decision.Status != model.DecisionInformational {
		t.Errorf("second decision = %+v, want informational", second.Decision)
	}

	if first.End > second.Start {
		t.Errorf("item spans overlap: first ends %d, second starts %d", first.End, second.Start)
	}
}

func TestExtractAllNoMarkers(t *testing.T) {
	e := NewExtractor(nil)

	items := e.ExtractAll(context.Background(), "דיון כללי על מצב התשתיות בעיר")
	if len(items) != 1 {
		t.Fatalf("got %d items, want whole section as one item", len(items))
	}
	if items[0].Number != "1" {
		t.Errorf("number = %q, want 1", items[0].Number)
	}
}

func TestExtractAllEmpty(t *testing.T) {
	e := NewExtractor(nil)
	if items := e.ExtractAll(context.Background(), "  \n "); items != nil {
		t.Errorf("got %d items for blank section", len(items))
	}
}

func TestExtractItemDialogue(t *testing.T) {
	e := NewExtractor(nil)
	body := "סעיף 3: שאילתה בנושא תאורת רחובות\nיוסי לוי: מתי תותקן התאורה ברחוב הרצל?\nראש העיר: העבודות יחלו בחודש הבא"

	item := e.ExtractItem(context.Background(), body, "3")
	if len(item.Dialogue) != 2 {
		t.Fatalf("got %d dialogue entries, want 2", len(item.Dialogue))
	}
	if item.Dialogue[0].Speaker != "יוסי לוי" || !item.Dialogue[0].IsQuestion {
		t.Errorf("first entry = %+v, want question by יוסי לוי", item.Dialogue[0])
	}
	if item.Dialogue[1].Speaker != "ראש העיר" || item.Dialogue[1].IsQuestion {
		t.Errorf("second entry = %+v, want statement by ראש העיר", item.Dialogue[1])
	}
}

func TestExtractItemDialogueQuestionMidSentence(t *testing.T) {
	e := NewExtractor(nil)
	body := "סעיף 6: שאילתות חברי המועצה\nדוד כהן: מדוע לא הוקצה תקציב? נבדוק בהמשך"

	item := e.ExtractItem(context.Background(), body, "6")
	if len(item.Dialogue) != 1 {
		t.Fatalf("got %d dialogue entries, want 1", len(item.Dialogue))
	}
	if !item.Dialogue[0].IsQuestion {
		t.Errorf("entry = %+v, want question mark anywhere in content to flag a question", item.Dialogue[0])
	}
}

func TestExtractItemSkipsNonSpeakerLabels(t *testing.T) {
	e := NewExtractor(nil)
	item := e.ExtractItem(context.Background(), "סעיף 1: אישור פרוטוקול\nהחלטה: אושר\nהצבעה: פה אחד", "1")

	if len(item.Dialogue) != 0 {
		t.Errorf("decision and vote headers parsed as dialogue: %+v", item.Dialogue)
	}
}

func TestExtractItemExpertOpinion(t *testing.T) {
	e := NewExtractor(nil)
	item := e.ExtractItem(context.Background(), "סעיף 2: שינוי תב\"ע\nדברי הסבר: הפרויקט נדרש לאור גידול האוכלוסייה באזור\nהחלטה: אושר", "2")

	if item.ExpertOpinion != "הפרויקט נדרש לאור גידול האוכלוסייה באזור" {
		t.Errorf("expert opinion = %q", item.ExpertOpinion)
	}
}

func TestExtractItemExpertOpinionRunsToEnd(t *testing.T) {
	e := NewExtractor(nil)
	item := e.ExtractItem(context.Background(), "סעיף 5: שיפוץ מבנה\nדברי הסבר: המבנה טעון חיזוק", "5")

	if item.ExpertOpinion != "המבנה טעון חיזוק" {
		t.Errorf("expert opinion = %q", item.ExpertOpinion)
	}
}

func TestExtractItemCategories(t *testing.T) {
	e := NewExtractor(nil)
	item := e.ExtractItem(context.Background(), "סעיף 4: הגדלת תקציב שיפוץ בית ספר יסודי", "4")

	want := map[string]bool{"budget": true, "education": true}
	if len(item.Categories) != 2 {
		t.Fatalf("categories = %v, want budget and education", item.Categories)
	}
	for _, c := range item.Categories {
		if !want[c] {
			t.Errorf("unexpected category %q", c)
		}
	}
}

func TestExtractItemRepairsMirroredBody(t *testing.T) {
	e := NewExtractor(nil)

	// Mirror order of "החלטה אושר פה אחד"
	item := e.ExtractItem(context.Background(), "דחא הפ רשוא הטלחה", "1")
	if item.Vote == nil || item.Vote.Type != model.VoteUnanimous {
		t.Errorf("vote = %+v, want unanimous after reversal repair", item.Vote)
	}
}

func TestFindItemMarksDedup(t *testing.T) {
	// OCR doubles a marker across adjacent lines; the marks land within
	// minMarkGap bytes and collapse to one
	marks := findItemMarks("סעיף 1: אישור פרוטוקול\nנושא 1: אישור פרוטוקול")
	if len(marks) != 1 {
		t.Errorf("got %d marks, want doubled marker deduplicated to 1", len(marks))
	}
}
