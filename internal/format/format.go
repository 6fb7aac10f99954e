// Package format holds the pluggable per-municipality extraction strategies.
// A Format knows the header wording, roster layout and decision phrasing of
// one municipality; a generic fallback covers the rest. Formats are selected
// by signature match against the document head and are extensible at runtime
// through the Registry.
package format

import (
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/hebrew"
	"github.com/civicdata-il/protokol/internal/model"
)

// Format extracts structured entities from the sections of one protocol
type Format interface {
	// Code is the registry key, e.g. "yehud"
	Code() string

	// HebrewName is the municipality name as written in protocols
	HebrewName() string

	// SignaturePatterns identify this municipality in a document head,
	// including mirror-order variants
	SignaturePatterns() []string

	ExtractHeader(text string) model.HeaderInfo
	ExtractAttendees(text string) []model.AttendeeInfo
	ExtractAbsent(text string) []model.AttendeeInfo
	ExtractStaff(text string) []model.AttendeeInfo
	ExtractDiscussions(text string) []model.DiscussionItem
}

// VoteExtractor is implemented by formats that override the shared vote
// parsing with municipality-specific phrasing
type VoteExtractor interface {
	ExtractVote(text string) *model.VoteInfo
}

// DecisionExtractor is the decision-parsing counterpart of VoteExtractor
type DecisionExtractor interface {
	ExtractDecision(text string) *model.DecisionInfo
}

// Decision keyword sets shared across formats, checked in fixed priority
// order: approved, rejected, removed, informational, deferred. The first
// set with a matching keyword wins.
var decisionKeywords = []struct {
	status   model.DecisionStatus
	keywords []string
}{
	{model.DecisionApproved, []string{"אושר", "אושרה", "מאושר", "התקבל", "התקבלה"}},
	{model.DecisionRejected, []string{"לא אושר", "לא אושרה", "לא התקבל", "נדחה", "נדחתה"}},
	{model.DecisionRemoved, []string{"ירד מסדר היום", "הורד", "נמחק", "הוסר"}},
	{model.DecisionInformational, []string{"לידיעה", "להידיעה", "לידיעת"}},
	{model.DecisionDeferred, []string{"נדחה לישיבה", "יידון", "הועבר לדיון"}},
}

var unanimousKeywords = []string{"פה אחד", "פה-אחד", "ללא מתנגדים"}

var voteCountRe = regexp.MustCompile(`(\d+)\s*(בעד|נגד|נמנע)`)

var decisionTextRes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)החלטה[:\s]+(.+?)(?:\n\n|$)`),
	regexp.MustCompile(`(?s)הוחלט[:\s]+(.+?)(?:\n\n|$)`),
	regexp.MustCompile(`(?s)המועצה\s+מחליטה[:\s]+(.+?)(?:\n\n|$)`),
}

// DefaultVote is the shared vote parser: unanimous idioms first, otherwise
// explicit counts. Returns nil when neither is present.
func DefaultVote(text string) *model.VoteInfo {
	if text == "" {
		return nil
	}

	for _, kw := range unanimousKeywords {
		if strings.Contains(text, kw) {
			return &model.VoteInfo{
				Type:       model.VoteUnanimous,
				Confidence: 0.9,
				RawText:    clip(text, 300),
			}
		}
	}

	matches := voteCountRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	vote := &model.VoteInfo{Type: model.VoteCounted, RawText: clip(text, 300)}
	for _, m := range matches {
		count := atoi(m[1])
		switch m[2] {
		case "בעד":
			vote.Yes = count
		case "נגד":
			vote.No = count
		case "נמנע":
			vote.Abstain = count
		}
	}
	vote.Total = vote.Yes + vote.No + vote.Abstain
	vote.Confidence = 0.8
	return vote
}

// DefaultDecision is the shared decision parser: first status whose keyword
// appears wins, then rationale extraction raises confidence. Returns nil
// when no status keyword is present.
func DefaultDecision(text string) *model.DecisionInfo {
	if text == "" {
		return nil
	}

	for _, set := range decisionKeywords {
		for _, kw := range set.keywords {
			if !strings.Contains(text, kw) {
				continue
			}

			decision := &model.DecisionInfo{
				Status:     set.status,
				Confidence: 0.7,
				RawText:    clip(text, 500),
			}
			for _, re := range decisionTextRes {
				if m := re.FindStringSubmatch(text); m != nil {
					decision.Text = clip(strings.TrimSpace(m[1]), 500)
					decision.Confidence = 0.8
					break
				}
			}
			return decision
		}
	}
	return nil
}

var (
	spaceRunsRe = regexp.MustCompile(` +`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText collapses whitespace the way every format expects its
// section text
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = spaceRunsRe.ReplaceAllString(text, " ")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// reversalRepair fixes a mirror-ordered line before parsing
func reversalRepair(line string) (string, bool) {
	if hebrew.IsLineReversed(line) {
		return hebrew.Repair(line), true
	}
	return line, false
}
