package format

import (
	"context"
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/discussion"
	"github.com/civicdata-il/protokol/internal/model"
	"github.com/civicdata-il/protokol/internal/router"
)

// GenericFormat covers Israeli municipal protocols with no registered
// municipality-specific format. Its patterns are broad, so field confidence
// accrues from a lower base than a municipality format would use.
type GenericFormat struct {
	items *discussion.Extractor
}

// Roles seen across municipalities
var genericRoles = []string{
	"ראש המועצה",
	"ראש העיר",
	"ראש הרשות",
	"סגן ראש המועצה",
	"סגן ראש העיר",
	"חבר מועצה",
	"חברת מועצה",
	"מנכ\"ל",
	"מנהל כללי",
	"גזבר",
	"גזברית",
	"יועץ משפטי",
	"יועצת משפטית",
	"מהנדס",
	"מהנדסת",
	"מזכיר",
	"מזכירה",
	"מבקר",
	"מבקרת",
}

// Committee names seen across municipalities
var genericCommittees = []string{
	"מליאת המועצה",
	"מועצת העיר",
	"מועצה מקומית",
	"ועדת הנהלה",
	"ועדת כספים",
	"ועדת תכנון ובניה",
	"ועדה מקומית לתכנון ובניה",
	"ועדת חינוך",
	"ועדת רווחה",
	"ועדה לאיכות הסביבה",
}

var (
	genericMunicipalityRes = []*regexp.Regexp{
		regexp.MustCompile(`עיריית\s+([א-ת\-\s]+)`),
		regexp.MustCompile(`מועצה\s+(?:מקומית|אזורית)\s+([א-ת\-\s]+)`),
		regexp.MustCompile(`רשות\s+מקומית\s+([א-ת\-\s]+)`),
	}
	genericCommitteeRe = regexp.MustCompile(`(ועד[הת]\s+[א-ת\s]+|מליאת?\s+ה?מועצה)`)
)

// NewGenericFormat builds the fallback format
func NewGenericFormat(rt *router.Router) *GenericFormat {
	return &GenericFormat{items: discussion.NewExtractor(rt)}
}

func (f *GenericFormat) Code() string       { return "generic" }
func (f *GenericFormat) HebrewName() string { return "כללי" }

// SignaturePatterns is empty: the generic format is never detected, only
// used as fallback
func (f *GenericFormat) SignaturePatterns() []string { return nil }

func (f *GenericFormat) ExtractHeader(text string) model.HeaderInfo {
	header := model.HeaderInfo{RawText: clip(text, 500)}
	if text == "" {
		return header
	}

	for _, re := range genericMunicipalityRes {
		if m := re.FindStringSubmatch(text); m != nil {
			header.Municipality = strings.TrimSpace(m[len(m)-1])
			break
		}
	}

	for _, committee := range genericCommittees {
		if strings.Contains(text, committee) {
			header.CommitteeName = committee
			break
		}
	}
	if header.CommitteeName == "" {
		if m := genericCommitteeRe.FindStringSubmatch(text); m != nil {
			header.CommitteeName = strings.TrimSpace(m[1])
		}
	}

	header.MeetingNumber = discussion.ExtractMeetingNumber(text)

	if date := discussion.ExtractMeetingDate(text); date != "" {
		header.MeetingDate = date
	}
	header.MeetingType = discussion.ExtractMeetingType(text)

	// Broad patterns start from a reduced base
	confidence := 0.3
	if header.Municipality != "" {
		confidence += 0.2
	}
	if header.MeetingNumber > 0 {
		confidence += 0.2
	}
	if header.MeetingDate != "" {
		confidence += 0.2
	}
	if header.CommitteeName != "" {
		confidence += 0.1
	}
	header.Confidence = confidence

	return header
}

func (f *GenericFormat) ExtractAttendees(text string) []model.AttendeeInfo {
	return parseRoster(text, genericRoles, model.AttendancePresent)
}

func (f *GenericFormat) ExtractAbsent(text string) []model.AttendeeInfo {
	return parseRoster(text, genericRoles, model.AttendanceAbsent)
}

func (f *GenericFormat) ExtractStaff(text string) []model.AttendeeInfo {
	return parseRoster(text, genericRoles, model.AttendanceStaff)
}

func (f *GenericFormat) ExtractDiscussions(text string) []model.DiscussionItem {
	return f.items.ExtractAll(context.Background(), text)
}
