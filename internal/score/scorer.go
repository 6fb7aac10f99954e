package score

import (
	"fmt"

	"github.com/civicdata-il/protokol/internal/model"
)

// Scorer grades extracted records: how complete the header is, how many
// discussions resolved to a vote and decision, and how confident the
// extractors were along the way.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate grades a record 0-100 and collects diagnostic signals
func (s *Scorer) Calculate(record model.ProtocolRecord) model.Quality {
	var signals []model.Signal

	headerScore, headerSignals := s.scoreHeader(record.Header)
	signals = append(signals, headerSignals...)

	rosterScore, rosterSignal := s.scoreRoster(record)
	if rosterSignal.Type != "" {
		signals = append(signals, rosterSignal)
	}

	discussionScore, discussionSignals := s.scoreDiscussions(record.Discussions)
	signals = append(signals, discussionSignals...)

	if record.Reversed {
		signals = append(signals, model.Signal{
			Type:    "mirror_ordered_source",
			Level:   "info",
			Message: "document arrived mirror-ordered and was repaired",
		})
	}

	total := headerScore + rosterScore + discussionScore
	return model.Quality{
		Index:      total,
		Confidence: s.confidenceLevel(total, record),
		Signals:    signals,
	}
}

// scoreHeader grades header completeness (0-30 points)
func (s *Scorer) scoreHeader(h model.HeaderInfo) (int, []model.Signal) {
	var signals []model.Signal
	points := 0

	if h.MeetingDate != "" {
		points += 10
	} else {
		signals = append(signals, model.Signal{
			Type:    "missing_header_date",
			Level:   "warning",
			Message: "no meeting date detected in header",
		})
	}
	if h.MeetingNumber > 0 {
		points += 10
	} else {
		signals = append(signals, model.Signal{
			Type:    "missing_meeting_number",
			Level:   "info",
			Message: "no meeting number detected in header",
		})
	}
	if h.Municipality != "" {
		points += 5
	}
	if h.CommitteeName != "" {
		points += 5
	}
	return points, signals
}

// scoreRoster grades attendance extraction (0-20 points)
func (s *Scorer) scoreRoster(record model.ProtocolRecord) (int, model.Signal) {
	present := len(record.Attendees)
	if present == 0 {
		return 0, model.Signal{
			Type:    "empty_roster",
			Level:   "warning",
			Message: "no attendees were extracted",
		}
	}

	points := 10
	if present >= 5 {
		points += 5
	}
	if len(record.Staff) > 0 {
		points += 5
	}
	return points, model.Signal{}
}

// scoreDiscussions grades agenda item extraction (0-50 points)
func (s *Scorer) scoreDiscussions(items []model.DiscussionItem) (int, []model.Signal) {
	if len(items) == 0 {
		return 0, []model.Signal{{
			Type:    "no_discussions",
			Level:   "warning",
			Message: "no discussion items were extracted",
		}}
	}

	var signals []model.Signal
	withVote, withDecision, lowConfidence := 0, 0, 0
	for _, item := range items {
		if item.Vote != nil {
			withVote++
		}
		if item.Decision != nil {
			withDecision++
		}
		if item.Confidence < 0.5 {
			lowConfidence++
		}
	}

	points := 20
	points += 15 * withVote / len(items)
	points += 15 * withDecision / len(items)

	if withDecision == 0 {
		signals = append(signals, model.Signal{
			Type:    "no_decisions",
			Level:   "warning",
			Message: "no item carries a recognizable decision",
		})
	}
	if lowConfidence > 0 {
		signals = append(signals, model.Signal{
			Type:    "low_confidence_items",
			Level:   "info",
			Message: fmt.Sprintf("%d of %d items extracted with low confidence", lowConfidence, len(items)),
		})
	}
	return points, signals
}

func (s *Scorer) confidenceLevel(total int, record model.ProtocolRecord) model.ConfidenceLevel {
	switch {
	case total >= 70 && record.Confidence >= 0.6:
		return model.ConfidenceHigh
	case total >= 40:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
