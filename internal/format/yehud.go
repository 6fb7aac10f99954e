package format

import (
	"context"
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/discussion"
	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

// YehudFormat parses Yehud-Monosson municipality protocols. Their layout is
// stable: header with municipality/committee/date/number, נוכחים roster,
// נעדרים roster, סגל roster, then numbered סעיף items. Anchors here are
// narrower than the generic ones, so matched fields score higher.
type YehudFormat struct {
	items *discussion.Extractor
}

var yehudCommittees = []string{
	"מליאת המועצה",
	"מועצת העיר",
	"ועדת הנהלה",
	"ועדת כספים",
	"ועדת תכנון ובניה",
	"ועדת חינוך",
	"ועדת רווחה",
	"ועדת איכות הסביבה",
}

var yehudRoles = []string{
	"ראש העיר",
	"סגן ראש העיר",
	"חבר מועצה",
	"חברת מועצה",
	"מנכ\"ל",
	"מנכל",
	"גזבר",
	"יועץ משפטי",
	"יועמ\"ש",
	"מהנדס העיר",
	"מזכיר העירייה",
	"מבקר העירייה",
}

var (
	yehudCommitteeRe = regexp.MustCompile(`(ועד[הת]\s+\S+|מליאת?\s+ה?מועצה|מועצת\s+העיר)`)
	yehudNumberRes   = []*regexp.Regexp{
		regexp.MustCompile(`ישיבה\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+)`),
		regexp.MustCompile(`פרוטוקול\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+)`),
		regexp.MustCompile(`(\d+)\s*'?סמ\s*(?:הבישי|לוקוטורפ)`), // Mirror order
	}
	yehudMeetingTypes = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`ישיבה\s+רגילה`), "רגילה"},
		{regexp.MustCompile(`ישיבה\s+שלא\s+מן\s+המניין`), "שלא מן המניין"},
		{regexp.MustCompile(`ישיבה\s+מיוחדת`), "מיוחדת"},
		{regexp.MustCompile(`ישיבה\s+חגיגית`), "חגיגית"},
	}
	yehudItemSplitRe = regexp.MustCompile(`סעיף\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+|[א-ת])`)
	yehudAltItemRe   = regexp.MustCompile(`(?s)(\d+)\s*[\.:\-]\s*(.+?)(?:\d+\s*[\.:\-]|$)`)
	yehudVoteCountRes = []*regexp.Regexp{
		regexp.MustCompile(`בעד[:\s]*(\d+)`),
		regexp.MustCompile(`נגד[:\s]*(\d+)`),
		regexp.MustCompile(`נמנע(?:ים)?[:\s]*(\d+)`),
	}
	yehudUnanimousRes = []*regexp.Regexp{
		regexp.MustCompile(`אושר\s+פה\s*אחד`),
		regexp.MustCompile(`פה\s*אחד`),
		regexp.MustCompile(`ללא\s+מתנגדים`),
		regexp.MustCompile(`אושר\s+ללא\s+הצבעה`),
	}
	yehudDecisionPatterns = []struct {
		re     *regexp.Regexp
		status model.DecisionStatus
	}{
		// Fixed checklist order: approved, rejected, removed, informational
		{regexp.MustCompile(`מועצת\s+העיר\s+מחליטה\s+לאשר`), model.DecisionApproved},
		{regexp.MustCompile(`המועצה\s+מאשרת`), model.DecisionApproved},
		{regexp.MustCompile(`הועדה\s+מאשרת`), model.DecisionApproved},
		{regexp.MustCompile(`הוחלט\s+לאשר`), model.DecisionApproved},
		{regexp.MustCompile(`אושר`), model.DecisionApproved},
		{regexp.MustCompile(`לא\s+אושר`), model.DecisionRejected},
		{regexp.MustCompile(`נדחה`), model.DecisionRejected},
		{regexp.MustCompile(`ירד\s+מסדר\s+היום`), model.DecisionRemoved},
		{regexp.MustCompile(`לידיעה`), model.DecisionInformational},
	}
)

// NewYehudFormat builds the Yehud-Monosson format
func NewYehudFormat(rt *router.Router) *YehudFormat {
	return &YehudFormat{items: discussion.NewExtractor(rt)}
}

func (f *YehudFormat) Code() string       { return "yehud" }
func (f *YehudFormat) HebrewName() string { return "יהוד-מונוסון" }

func (f *YehudFormat) SignaturePatterns() []string {
	return []string{
		`יהוד[\s\-]*מונוסון`,
		`ןוסונומ[\s\-]*דוהי`, // Mirror order
		`עיריית\s+יהוד`,
		`דוהי\s*תייריע`, // Mirror order
	}
}

func (f *YehudFormat) ExtractHeader(text string) model.HeaderInfo {
	header := model.HeaderInfo{RawText: clip(text, 500)}
	if text == "" {
		return header
	}

	header.Municipality = f.HebrewName()

	for _, committee := range yehudCommittees {
		if strings.Contains(text, committee) {
			header.CommitteeName = committee
			break
		}
	}
	if header.CommitteeName == "" {
		if m := yehudCommitteeRe.FindStringSubmatch(text); m != nil {
			header.CommitteeName = strings.TrimSpace(m[1])
		}
	}

	for _, re := range yehudNumberRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if n := atoi(m[1]); n > 0 {
				header.MeetingNumber = n
				break
			}
		}
	}
	if header.MeetingNumber == 0 {
		header.MeetingNumber = discussion.ExtractMeetingNumber(text)
	}

	if date := discussion.ExtractMeetingDate(text); date != "" {
		header.MeetingDate = date
	}

	header.MeetingType = "רגילה"
	for _, mt := range yehudMeetingTypes {
		if mt.re.MatchString(text) {
			header.MeetingType = mt.name
			break
		}
	}

	var confidence float64
	if header.Municipality != "" {
		confidence += 0.3
	}
	if header.MeetingNumber > 0 {
		confidence += 0.3
	}
	if header.MeetingDate != "" {
		confidence += 0.3
	}
	if header.CommitteeName != "" {
		confidence += 0.1
	}
	header.Confidence = confidence

	return header
}

func (f *YehudFormat) ExtractAttendees(text string) []model.AttendeeInfo {
	return parseRoster(text, yehudRoles, model.AttendancePresent)
}

func (f *YehudFormat) ExtractAbsent(text string) []model.AttendeeInfo {
	return parseRoster(text, yehudRoles, model.AttendanceAbsent)
}

func (f *YehudFormat) ExtractStaff(text string) []model.AttendeeInfo {
	return parseRoster(text, yehudRoles, model.AttendanceStaff)
}

func (f *YehudFormat) ExtractDiscussions(text string) []model.DiscussionItem {
	if text == "" {
		return nil
	}

	var items []model.DiscussionItem

	marks := yehudItemSplitRe.FindAllStringSubmatchIndex(text, -1)
	for i, m := range marks {
		number := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		body := text[m[1]:end]

		item := f.items.ExtractItem(context.Background(), body, number)
		item.Start, item.End = m[0], end
		if vote := f.ExtractVote(body); vote != nil {
			item.Vote = vote
		}
		if decision := f.ExtractDecision(body); decision != nil {
			item.Decision = decision
		}
		items = append(items, item)
	}

	// Some scans lose the סעיף markers entirely; fall back to bare
	// numbered sections
	if len(items) == 0 {
		items = f.extractAlternative(text)
	}
	return items
}

func (f *YehudFormat) extractAlternative(text string) []model.DiscussionItem {
	var items []model.DiscussionItem
	for _, m := range yehudAltItemRe.FindAllStringSubmatch(text, -1) {
		number, body := m[1], m[2]

		item := model.DiscussionItem{
			Number:     number,
			RawText:    clip(body, 500),
			Confidence: 0.4,
		}
		for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				item.Title = clip(line, 200)
				break
			}
		}
		item.Vote = f.ExtractVote(body)
		item.Decision = f.ExtractDecision(body)
		items = append(items, item)
	}
	return items
}

// ExtractVote applies Yehud phrasing first and falls back to the shared
// parser
func (f *YehudFormat) ExtractVote(text string) *model.VoteInfo {
	if text == "" {
		return nil
	}

	for _, re := range yehudUnanimousRes {
		if re.MatchString(text) {
			return &model.VoteInfo{
				Type:       model.VoteUnanimous,
				Confidence: 0.9,
				RawText:    clip(text, 300),
			}
		}
	}

	vote := &model.VoteInfo{Type: model.VoteCounted, RawText: clip(text, 300)}
	found := false
	for i, re := range yehudVoteCountRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		found = true
		switch i {
		case 0:
			vote.Yes = atoi(m[1])
		case 1:
			vote.No = atoi(m[1])
		case 2:
			vote.Abstain = atoi(m[1])
		}
	}
	if found {
		vote.Total = vote.Yes + vote.No + vote.Abstain
		vote.Confidence = 0.85
		return vote
	}

	return DefaultVote(text)
}

// ExtractDecision applies Yehud decision phrasing first and falls back to
// the shared parser
func (f *YehudFormat) ExtractDecision(text string) *model.DecisionInfo {
	if text == "" {
		return nil
	}

	for _, p := range yehudDecisionPatterns {
		if !p.re.MatchString(text) {
			continue
		}

		decision := &model.DecisionInfo{
			Status:     p.status,
			Confidence: 0.8,
			RawText:    clip(text, 500),
		}
		for _, re := range decisionTextRes {
			if m := re.FindStringSubmatch(text); m != nil {
				decision.Text = clip(strings.TrimSpace(m[1]), 500)
				decision.Confidence = 0.85
				break
			}
		}
		return decision
	}

	return DefaultDecision(text)
}
