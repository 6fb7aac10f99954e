package discussion

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/civicdata-il/protokol/internal/hebrew"
	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

// maxItemLen caps a single discussion item; anything longer is almost
// always a segmentation miss swallowing the rest of the document.
const maxItemLen = 5000

// minMarkGap drops duplicate item marks that OCR sometimes doubles.
const minMarkGap = 50

var itemMarkRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*סעיף\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+|[א-ת])`),
	regexp.MustCompile(`(?m)^\s*נושא\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+)`),
	regexp.MustCompile(`(?m)^\s*(\d{1,2})\s*[\.\)]\s+\S`),
	regexp.MustCompile(`(?m)ףיעס\s*[:\-]?\s*(\d+)`), // Mirror order
}

var (
	expertOpinionRe = regexp.MustCompile(`(?s)דברי\s+הסבר\s*[:\-]?\s*(.+?)(?:הצבעה|החלטה|פה\s+אחד|$)`)
	dialogueLineRe  = regexp.MustCompile(`^([א-ת][א-ת\s"״'\.]{1,35}?)\s*:\s*(.{3,})$`)
	titleStopRe     = regexp.MustCompile(`[:\n]`)
	titlePrefixRe   = regexp.MustCompile(`^(?:סעיף|נושא)?\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(?:\d+|[א-ת])?\s*[\.\):\-]*\s*`)
)

var categoryKeywords = map[string][]string{
	"budget":         {"תקציב", "תב\"ר", "תבר", "מימון", "הקצבה"},
	"education":      {"חינוך", "בית ספר", "גן ילדים", "תלמידים"},
	"infrastructure": {"תשתיות", "כביש", "סלילה", "תאורה", "ביוב", "מים"},
	"planning":       {"תכנון", "בניה", "בנייה", "היתר", "תב\"ע"},
	"welfare":        {"רווחה", "קשישים", "נוער", "קהילה"},
	"personnel":      {"מינוי", "כוח אדם", "משרה", "העסקה"},
	"legal":          {"משפטי", "תביעה", "הסכם", "חוזה", "מכרז"},
}

// Extractor segments the discussions section into items and fills each one
// in. The router is optional; without it only pattern extraction runs.
type Extractor struct {
	router *router.Router
}

func NewExtractor(r *router.Router) *Extractor {
	return &Extractor{router: r}
}

// ExtractAll splits text into discussion items and extracts each. Items
// that fail to parse still appear with whatever was recovered; a broken
// item never aborts the rest.
func (e *Extractor) ExtractAll(ctx context.Context, text string) []model.DiscussionItem {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	marks := findItemMarks(text)
	if len(marks) == 0 {
		// No markers at all: treat the whole section as one item
		item := e.ExtractItem(ctx, text, "1")
		item.End = len(text)
		return []model.DiscussionItem{item}
	}

	items := make([]model.DiscussionItem, 0, len(marks))
	for i, mark := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].pos
		}
		body := text[mark.pos:end]
		if len(body) > maxItemLen {
			body = body[:maxItemLen]
		}

		item := e.ExtractItem(ctx, body, mark.number)
		item.Start, item.End = mark.pos, end
		items = append(items, item)
	}
	return items
}

// ExtractItem parses a single discussion item body.
func (e *Extractor) ExtractItem(ctx context.Context, body, number string) model.DiscussionItem {
	body = hebrew.RepairIfReversed(body)

	item := model.DiscussionItem{
		Number:  number,
		RawText: clipText(body, 1000),
	}

	item.Title = extractTitle(body)
	item.Description = extractDescription(body, item.Title)
	if m := expertOpinionRe.FindStringSubmatch(body); m != nil {
		item.ExpertOpinion = clipText(strings.TrimSpace(m[1]), 1000)
	}
	item.Dialogue = extractDialogue(body)
	item.Vote = e.ExtractVote(ctx, body)
	item.Decision = e.ExtractDecision(ctx, body)
	item.Budget = ExtractBudget(body)
	item.Categories = classifyItem(body)

	item.Confidence = itemConfidence(item)
	return item
}

type itemMark struct {
	pos    int
	number string
}

func findItemMarks(text string) []itemMark {
	var marks []itemMark
	for _, re := range itemMarkRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			marks = append(marks, itemMark{pos: m[0], number: text[m[2]:m[3]]})
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })

	// OCR tends to double markers; keep the first of any close pair
	deduped := marks[:0]
	for _, m := range marks {
		if len(deduped) > 0 && m.pos-deduped[len(deduped)-1].pos < minMarkGap {
			continue
		}
		deduped = append(deduped, m)
	}
	return deduped
}

func extractTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Strip the item marker prefix from the first real line
		line = titlePrefixRe.ReplaceAllString(line, "")
		if loc := titleStopRe.FindStringIndex(line); loc != nil && loc[0] > 10 {
			line = line[:loc[0]]
		}
		line = strings.TrimSpace(line)
		if len([]rune(line)) >= 3 {
			return clipText(line, 200)
		}
	}
	return ""
}

func extractDescription(body, title string) string {
	lines := strings.Split(body, "\n")
	var out []string
	seenTitle := title == ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !seenTitle {
			if strings.Contains(line, title) {
				seenTitle = true
			}
			continue
		}
		if dialogueLineRe.MatchString(line) {
			break
		}
		out = append(out, line)
		if len(out) >= 5 {
			break
		}
	}
	return clipText(strings.Join(out, " "), 500)
}

func extractDialogue(body string) []model.DialogueEntry {
	var entries []model.DialogueEntry
	for _, line := range strings.Split(body, "\n") {
		m := dialogueLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		speaker := strings.TrimSpace(m[1])
		// Roster labels and decision headers look like speakers; skip them
		switch speaker {
		case "החלטה", "הצבעה", "נוכחים", "חסרים", "נעדרים", "סגל", "משתתפים", "דברי הסבר":
			continue
		}
		content := strings.TrimSpace(m[2])
		entries = append(entries, model.DialogueEntry{
			Speaker:    speaker,
			Content:    clipText(content, 500),
			IsQuestion: strings.Contains(content, "?"),
		})
	}
	return entries
}

func classifyItem(body string) []string {
	var categories []string
	for _, cat := range []string{"budget", "education", "infrastructure", "planning", "welfare", "personnel", "legal"} {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(body, kw) {
				categories = append(categories, cat)
				break
			}
		}
	}
	return categories
}

func itemConfidence(item model.DiscussionItem) float64 {
	confidence := 0.3
	if item.Title != "" {
		confidence += 0.2
	}
	if item.Vote != nil {
		confidence += 0.2
	}
	if item.Decision != nil {
		confidence += 0.2
	}
	if item.Budget != nil || len(item.Dialogue) > 0 {
		confidence += 0.1
	}
	return confidence
}

func clipText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
