package router

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Prompts ask for constrained JSON so responses stay machine-parseable.
// The local model gets Hebrew-only prompts; the cloud model gets bilingual
// prompts with reversal hints, which it handles noticeably better.

func localPrompt(text string, typ ExtractionType) string {
	text = truncate(text, 1500)

	switch typ {
	case TypeVote:
		return fmt.Sprintf(`אנא חלץ את תוצאות ההצבעה מהטקסט הבא.
החזר JSON בפורמט: {"type": "unanimous"|"counted", "yes": number, "no": number, "abstain": number}

טקסט:
%s

JSON:`, text)
	case TypeDecision:
		return fmt.Sprintf(`אנא חלץ את ההחלטה מהטקסט הבא.
החזר JSON בפורמט: {"status": "אושר"|"נדחה"|"לידיעה", "text": "נוסח ההחלטה"}

טקסט:
%s

JSON:`, text)
	case TypeNameMatch:
		return fmt.Sprintf(`האם שני השמות בטקסט הבא מתייחסים לאותו אדם?
שים לב: הטקסט עשוי להיות הפוך (RTL שנקרא כ-LTR).
החזר: YES או NO

%s

תשובה:`, text)
	default:
		return fmt.Sprintf(`אנא חלץ את המידע המבוקש (%s) מהטקסט הבא.
החזר JSON בלבד.

טקסט:
%s

תשובה:`, typ, text)
	}
}

func cloudPrompt(text string, typ ExtractionType) string {
	text = truncate(text, 2000)

	switch typ {
	case TypeVote:
		return fmt.Sprintf(`You are analyzing a Hebrew municipal protocol. Extract the voting results.

Return ONLY a JSON object in this format:
{"type": "unanimous" or "counted", "yes": number, "no": number, "abstain": number}

Note: The text may be reversed (RTL read as LTR). Common patterns:
- "פה אחד" or "דחא הפ" = unanimous
- Numbers followed by "בעד"/"דעב" = yes votes
- Numbers followed by "נגד"/"דגנ" = no votes

Text:
%s

JSON:`, text)
	case TypeDecision:
		return fmt.Sprintf(`You are analyzing a Hebrew municipal protocol. Extract the decision.

Return ONLY a JSON object in this format:
{"status": "אושר" or "נדחה" or "לידיעה", "text": "decision text in Hebrew"}

Text:
%s

JSON:`, text)
	case TypeAttendees, TypeAbsent, TypeStaff:
		return fmt.Sprintf(`Extract the list of people from this Hebrew protocol roster.
Return a JSON array of objects: [{"name": "...", "role": "..."}]
Consider that OCR may have reversed the text (RTL read as LTR).

Text:
%s

JSON:`, text)
	case TypeNameMatch:
		return fmt.Sprintf(`Determine if the two Hebrew names in this text refer to the same person.
Consider that OCR may have reversed the text (RTL read as LTR).

%s

Answer with ONLY: YES or NO`, text)
	default:
		return fmt.Sprintf(`You are analyzing a Hebrew municipal protocol. Extract the requested
information (%s) and return ONLY JSON.

Text:
%s

Answer:`, typ, text)
	}
}

var (
	jsonObjectRe = regexp.MustCompile(`\{[^{}]*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[[^\[\]]*\]`)
)

// parseModelResponse pulls the first JSON object or array out of free-form
// model output. Unparseable responses come back as raw text at reduced
// confidence rather than failing.
func parseModelResponse(response string, typ ExtractionType, jsonConfidence, rawConfidence float64) (map[string]any, float64) {
	response = strings.TrimSpace(response)

	if m := jsonObjectRe.FindString(response); m != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(m), &data); err == nil {
			return data, jsonConfidence
		}
	}

	if m := jsonArrayRe.FindString(response); m != "" {
		var list []any
		if err := json.Unmarshal([]byte(m), &list); err == nil {
			return map[string]any{"items": list}, jsonConfidence
		}
	}

	if typ == TypeNameMatch {
		upper := strings.ToUpper(response)
		if strings.Contains(upper, "YES") {
			return map[string]any{"match": true}, jsonConfidence + 0.05
		}
		if strings.Contains(upper, "NO") {
			return map[string]any{"match": false}, jsonConfidence + 0.05
		}
	}

	return map[string]any{"raw": response}, rawConfidence
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
