package discussion

import (
	"context"
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

// Fixed checklist order: approved, rejected, removed, informational,
// deferred. The first matching pattern decides the status.
var decisionStatusRes = []struct {
	re     *regexp.Regexp
	status model.DecisionStatus
}{
	{regexp.MustCompile(`הוחלט\s+לאשר`), model.DecisionApproved},
	{regexp.MustCompile(`אושר`), model.DecisionApproved},
	{regexp.MustCompile(`מאושר`), model.DecisionApproved},
	{regexp.MustCompile(`מאשרת`), model.DecisionApproved},
	{regexp.MustCompile(`הוחלט\s+שלא\s+לאשר`), model.DecisionRejected},
	{regexp.MustCompile(`לא\s+אושר`), model.DecisionRejected},
	{regexp.MustCompile(`נדחה`), model.DecisionRejected},
	{regexp.MustCompile(`ירד\s+מסדר\s+היום`), model.DecisionRemoved},
	{regexp.MustCompile(`הוסר\s+מסדר\s+היום`), model.DecisionRemoved},
	{regexp.MustCompile(`לידיעה`), model.DecisionInformational},
	{regexp.MustCompile(`דיווח`), model.DecisionInformational},
	{regexp.MustCompile(`נדחה\s+לישיבה\s+הבאה`), model.DecisionDeferred},
	{regexp.MustCompile(`יידון\s+בישיבה\s+הבאה`), model.DecisionDeferred},
}

var decisionBodyRes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)החלטה\s*[:\-]\s*(.+?)(?:\n\n|$)`),
	regexp.MustCompile(`(?s)הוחלט\s*[:\-]?\s*(.+?)(?:\n\n|$)`),
	regexp.MustCompile(`(?s)(?:המועצה|הועדה|הוועדה)\s+מחליטה\s*[:\-]?\s*(.+?)(?:\n\n|$)`),
}

// ExtractDecision parses the formal decision from discussion text, falling
// back to the router when no keyword matched. nil means no decision was
// recorded for the item.
func (e *Extractor) ExtractDecision(ctx context.Context, text string) *model.DecisionInfo {
	if text == "" {
		return nil
	}

	for _, p := range decisionStatusRes {
		if !p.re.MatchString(text) {
			continue
		}
		decision := &model.DecisionInfo{
			Status:     p.status,
			Confidence: 0.7,
			RawText:    clipText(text, 500),
		}
		for _, re := range decisionBodyRes {
			if m := re.FindStringSubmatch(text); m != nil {
				decision.Text = clipText(strings.TrimSpace(m[1]), 500)
				decision.Confidence = 0.8
				break
			}
		}
		return decision
	}

	return e.decisionFromRouter(ctx, text)
}

func (e *Extractor) decisionFromRouter(ctx context.Context, text string) *model.DecisionInfo {
	if e.router == nil {
		return nil
	}

	result := e.router.Extract(ctx, text, router.TypeDecision, 0.6)
	if !result.Success {
		return nil
	}

	status := model.DecisionUnknown
	switch result.String("status") {
	case "approved":
		status = model.DecisionApproved
	case "rejected":
		status = model.DecisionRejected
	case "removed":
		status = model.DecisionRemoved
	case "info", "information":
		status = model.DecisionInformational
	case "deferred":
		status = model.DecisionDeferred
	}
	if status == model.DecisionUnknown && result.String("text") == "" {
		return nil
	}
	return &model.DecisionInfo{
		Status:     status,
		Text:       clipText(result.String("text"), 500),
		Confidence: result.Confidence,
		RawText:    clipText(text, 500),
	}
}
