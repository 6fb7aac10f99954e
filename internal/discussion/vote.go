package discussion

import (
	"context"
	"regexp"

	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

var unanimousVoteRes = []*regexp.Regexp{
	regexp.MustCompile(`פה\s*אחד`),
	regexp.MustCompile(`דחא\s*הפ`), // Mirror order
	regexp.MustCompile(`ללא\s+מתנגדים`),
	regexp.MustCompile(`ללא\s+התנגדות`),
	regexp.MustCompile(`אושר\s+ללא\s+הצבעה`),
	regexp.MustCompile(`בהסכמה\s+כללית`),
}

var countedVoteRe = regexp.MustCompile(`(\d+)\s*(בעד|נגד|נמנע(?:ים)?)`)

var majorityVoteRe = regexp.MustCompile(`ברוב\s+קולות|תולוק\s+בורב`)

// ExtractVote parses a vote record from discussion text. Unanimous idioms
// win outright, explicit counts come second, and when neither matches the
// router gets a chance with whatever models are configured. A text with no
// recognizable vote yields nil, never an error.
func (e *Extractor) ExtractVote(ctx context.Context, text string) *model.VoteInfo {
	if text == "" {
		return nil
	}

	for _, re := range unanimousVoteRes {
		if re.MatchString(text) {
			return &model.VoteInfo{
				Type:       model.VoteUnanimous,
				Confidence: 0.9,
				Method:     "pattern",
				RawText:    clipText(text, 300),
			}
		}
	}

	if vote := parseCountedVote(text); vote != nil {
		if majorityVoteRe.MatchString(text) {
			vote.Type = model.VoteMajority
		}
		return vote
	}

	if majorityVoteRe.MatchString(text) {
		return &model.VoteInfo{
			Type:       model.VoteMajority,
			Confidence: 0.7,
			Method:     "pattern",
			RawText:    clipText(text, 300),
		}
	}

	return e.voteFromRouter(ctx, text)
}

func parseCountedVote(text string) *model.VoteInfo {
	matches := countedVoteRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	vote := &model.VoteInfo{
		Type:       model.VoteCounted,
		Confidence: 0.8,
		Method:     "pattern",
		RawText:    clipText(text, 300),
	}
	for _, m := range matches {
		n := atoi(m[1])
		switch m[2] {
		case "בעד":
			vote.Yes = n
		case "נגד":
			vote.No = n
		default:
			vote.Abstain = n
		}
	}
	vote.Total = vote.Yes + vote.No + vote.Abstain
	return vote
}

func (e *Extractor) voteFromRouter(ctx context.Context, text string) *model.VoteInfo {
	if e.router == nil {
		return nil
	}

	result := e.router.Extract(ctx, text, router.TypeVote, 0.6)
	if !result.Success {
		return nil
	}

	vote := &model.VoteInfo{
		Type:       model.VoteUnknown,
		Yes:        result.Int("yes"),
		No:         result.Int("no"),
		Abstain:    result.Int("abstain"),
		Confidence: result.Confidence,
		Method:     string(result.Method),
		RawText:    clipText(text, 300),
	}
	switch result.String("type") {
	case "unanimous":
		vote.Type = model.VoteUnanimous
	case "counted":
		vote.Type = model.VoteCounted
	case "majority":
		vote.Type = model.VoteMajority
	default:
		if vote.Yes+vote.No+vote.Abstain > 0 {
			vote.Type = model.VoteCounted
		}
	}
	vote.Total = vote.Yes + vote.No + vote.Abstain
	if vote.Type == model.VoteUnknown && vote.Total == 0 {
		return nil
	}
	return vote
}
