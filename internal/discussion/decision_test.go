package discussion

import (
	"context"
	"testing"

	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

func TestExtractDecisionApprovedWithBody(t *testing.T) {
	e := NewExtractor(nil)

	decision := e.ExtractDecision(context.Background(), "החלטה: אושר תקציב האגף לשנת 2024")
	if decision == nil {
		t.Fatal("expected a decision")
	}
	if decision.Status != model.DecisionApproved {
		t.Errorf("status = %s, want approved", decision.Status)
	}
	if decision.Text != "אושר תקציב האגף לשנת 2024" {
		t.Errorf("text = %q", decision.Text)
	}
	if decision.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8 with extracted body", decision.Confidence)
	}
}

// Patterns run as a fixed checklist, approved first; the first match
// decides, even when a later pattern covers a longer phrase.
func TestExtractDecisionChecklistOrder(t *testing.T) {
	e := NewExtractor(nil)
	cases := []struct {
		text string
		want model.DecisionStatus
	}{
		// None of the approved patterns match the negated phrasing
		{"הוחלט שלא לאשר את הבקשה", model.DecisionRejected},
		// אושר inside לא אושר resolves in the approved pass
		{"התב\"ר לא אושר", model.DecisionApproved},
		// נדחה inside נדחה לישיבה הבאה resolves in the rejected pass
		{"הנושא נדחה לישיבה הבאה", model.DecisionRejected},
		{"הנושא יידון בישיבה הבאה", model.DecisionDeferred},
	}
	for _, tc := range cases {
		decision := e.ExtractDecision(context.Background(), tc.text)
		if decision == nil {
			t.Fatalf("ExtractDecision(%q) = nil", tc.text)
		}
		if decision.Status != tc.want {
			t.Errorf("ExtractDecision(%q) status = %s, want %s", tc.text, decision.Status, tc.want)
		}
	}
}

func TestExtractDecisionRemoved(t *testing.T) {
	e := NewExtractor(nil)

	decision := e.ExtractDecision(context.Background(), "הסעיף ירד מסדר היום לבקשת המציע")
	if decision == nil || decision.Status != model.DecisionRemoved {
		t.Fatalf("decision = %+v, want removed", decision)
	}
}

func TestExtractDecisionNoKeywordNoRouter(t *testing.T) {
	e := NewExtractor(nil)

	if d := e.ExtractDecision(context.Background(), "התקיים סבב התייחסויות של החברים"); d != nil {
		t.Errorf("decision = %+v, want nil", d)
	}
}

func TestExtractDecisionEscalatesToRouter(t *testing.T) {
	rt := stubRouter(router.Result{
		Success:    true,
		Confidence: 0.75,
		Method:     router.MethodOllama,
		Data:       map[string]any{"status": "approved", "text": "ההצעה התקבלה ברוב קולות"},
	})
	e := NewExtractor(rt)

	decision := e.ExtractDecision(context.Background(), "התקיים סבב התייחסויות של החברים")
	if decision == nil {
		t.Fatal("expected decision from router escalation")
	}
	if decision.Status != model.DecisionApproved {
		t.Errorf("status = %s, want approved", decision.Status)
	}
	if decision.Text != "ההצעה התקבלה ברוב קולות" {
		t.Errorf("text = %q", decision.Text)
	}
	if decision.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", decision.Confidence)
	}
}

func TestExtractDecisionRouterUnknownStatus(t *testing.T) {
	rt := stubRouter(router.Result{
		Success:    true,
		Confidence: 0.75,
		Method:     router.MethodOllama,
		Data:       map[string]any{"status": "mystery"},
	})
	e := NewExtractor(rt)

	if d := e.ExtractDecision(context.Background(), "התקיים סבב התייחסויות של החברים"); d != nil {
		t.Errorf("decision = %+v, want nil for unknown status with no text", d)
	}
}
