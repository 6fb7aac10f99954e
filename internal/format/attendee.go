package format

import (
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/model"
)

// Roster line parsing shared by all formats. A line is split on the first
// matching separator from a priority list, the halves classified as name and
// role against the format's role vocabulary; with no separator the line is
// scanned for any role phrase and the remainder becomes the name.

var attendeeSeparators = []string{" - ", " – ", ": ", ", ", " / "}

var (
	honorificRe  = regexp.MustCompile(`^(מר|גב['׳]?|ד"ר|עו"ד|רו"ח|פרופ['׳]?)\s*`)
	numberingRe  = regexp.MustCompile(`^\d+\s*[\.\)]\s*`)
	trailPunctRe = regexp.MustCompile(`\s*[-,;:]\s*$`)
	rolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`ראש\s+ה`),
		regexp.MustCompile(`סגן`),
		regexp.MustCompile(`חבר\s+מועצה`),
		regexp.MustCompile(`גזבר`),
		regexp.MustCompile(`יועץ`),
		regexp.MustCompile(`מהנדס`),
		regexp.MustCompile(`מנכ"ל`),
	}
)

// Labels that open roster sections; lines containing them are headings, not
// people.
var rosterLabels = []string{"נוכחים", "חסרים", "נעדרים", "סגל", "משתתפים", "השתתפו", "נכחו"}

// parseRoster extracts people line by line from a roster section
func parseRoster(text string, roles []string, attendance model.AttendanceType) []model.AttendeeInfo {
	if text == "" {
		return nil
	}

	var attendees []model.AttendeeInfo
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) < 3 || isRosterLabel(line) {
			continue
		}
		if a, ok := parseAttendeeLine(line, roles, attendance); ok {
			attendees = append(attendees, a)
		}
	}
	return attendees
}

func isRosterLabel(line string) bool {
	for _, label := range rosterLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

// parseAttendeeLine parses one roster line, repairing reversal first
func parseAttendeeLine(line string, roles []string, attendance model.AttendanceType) (model.AttendeeInfo, bool) {
	repaired, wasReversed := reversalRepair(line)

	attendee := model.AttendeeInfo{
		Attendance: attendance,
		Reversed:   wasReversed,
		RawText:    repaired,
	}

	var parts []string
	for _, sep := range attendeeSeparators {
		if strings.Contains(repaired, sep) {
			parts = strings.SplitN(repaired, sep, 2)
			break
		}
	}

	if len(parts) == 2 {
		first, second := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		switch {
		case isRole(first, roles):
			attendee.Role = first
			attendee.Name = second
		case isRole(second, roles):
			attendee.Name = first
			attendee.Role = second
		default:
			// Name-first is the dominant layout
			attendee.Name = first
			attendee.Role = second
		}
	} else {
		for _, role := range roles {
			if strings.Contains(repaired, role) {
				attendee.Role = role
				attendee.Name = strings.Trim(strings.ReplaceAll(repaired, role, ""), " -,/")
				break
			}
		}
		if attendee.Name == "" {
			attendee.Name = repaired
		}
	}

	attendee.Name = cleanName(attendee.Name)
	if len([]rune(attendee.Name)) < 2 {
		return model.AttendeeInfo{}, false
	}

	if attendee.Role != "" {
		attendee.Confidence = 0.7
	} else {
		attendee.Confidence = 0.5
	}
	return attendee, true
}

// isRole checks vocabulary membership both ways plus structural role shapes
func isRole(text string, roles []string) bool {
	text = strings.TrimSpace(text)
	for _, role := range roles {
		if strings.Contains(text, role) || strings.Contains(role, text) {
			return true
		}
	}
	for _, re := range rolePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// cleanName strips honorifics, numbering and trailing punctuation and
// normalizes internal whitespace
func cleanName(name string) string {
	if name == "" {
		return ""
	}
	name = honorificRe.ReplaceAllString(name, "")
	name = numberingRe.ReplaceAllString(name, "")
	name = trailPunctRe.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}
