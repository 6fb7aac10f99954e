package discussion

import (
	"fmt"
	"regexp"
	"strings"
)

// Hebrew month names as they appear in protocol headers, including common
// OCR confusions (א/ע swaps survive because we match the clean form only).
var hebrewMonths = map[string]int{
	"ינואר":   1,
	"פברואר":  2,
	"מרץ":     3,
	"מרס":     3,
	"אפריל":   4,
	"מאי":     5,
	"יוני":    6,
	"יולי":    7,
	"אוגוסט":  8,
	"ספטמבר":  9,
	"אוקטובר": 10,
	"נובמבר":  11,
	"דצמבר":   12,
}

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[./\-](\d{1,2})[./\-](\d{2,4})\b`)
	hebrewDateRe  = regexp.MustCompile(`\b(\d{1,2})\s*ב?([א-ת]+)\s+(\d{4})\b`)
	meetingNumRes = []*regexp.Regexp{
		regexp.MustCompile(`ישיבה\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+)`),
		regexp.MustCompile(`פרוטוקול\s*(?:מס['׳]?|מספר)?\s*[:\-]?\s*(\d+)`),
		regexp.MustCompile(`מס['׳]?\s*(\d+)`),
	}
	meetingTypeRes = []struct {
		re   *regexp.Regexp
		name string
	}{
		{regexp.MustCompile(`שלא\s+מן\s+המניין`), "שלא מן המניין"},
		{regexp.MustCompile(`מן\s+המניין`), "מן המניין"},
		{regexp.MustCompile(`ישיבה\s+מיוחדת`), "מיוחדת"},
		{regexp.MustCompile(`ישיבה\s+חגיגית`), "חגיגית"},
		{regexp.MustCompile(`ישיבה\s+רגילה`), "רגילה"},
	}
)

// ExtractMeetingDate finds the first plausible meeting date in text and
// returns it in ISO form (YYYY-MM-DD), or "" when none is found. Numeric
// dates are read day-first as written in Israel.
func ExtractMeetingDate(text string) string {
	if m := numericDateRe.FindStringSubmatch(text); m != nil {
		if iso := ParseIsraeliDate(m[1], m[2], m[3]); iso != "" {
			return iso
		}
	}
	if m := hebrewDateRe.FindStringSubmatch(text); m != nil {
		if month, ok := hebrewMonths[m[2]]; ok {
			return ParseIsraeliDate(m[1], fmt.Sprintf("%d", month), m[3])
		}
	}
	return ""
}

// ParseIsraeliDate validates day/month/year strings and formats them as
// YYYY-MM-DD. Two-digit years are pinned to the 2000s.
func ParseIsraeliDate(day, month, year string) string {
	d := atoi(day)
	m := atoi(month)
	y := atoi(year)
	if y < 100 {
		y += 2000
	}
	if d < 1 || d > 31 || m < 1 || m > 12 || y < 1990 || y > 2100 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// ExtractMeetingNumber returns the meeting or protocol number, 0 when
// absent.
func ExtractMeetingNumber(text string) int {
	for _, re := range meetingNumRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if n := atoi(m[1]); n > 0 {
				return n
			}
		}
	}
	return 0
}

// ExtractMeetingType classifies the meeting kind from header phrasing.
// Ordinary meetings are the default.
func ExtractMeetingType(text string) string {
	for _, mt := range meetingTypeRes {
		if mt.re.MatchString(text) {
			return mt.name
		}
	}
	return "רגילה"
}

func atoi(s string) int {
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
