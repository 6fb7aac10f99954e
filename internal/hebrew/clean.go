package hebrew

import (
	"regexp"
	"strings"
)

var (
	pageMarkerRe = regexp.MustCompile(`---\s*Page\s*\d+\s*---`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	spaceRunsRe  = regexp.MustCompile(` {2,}`)
)

// CleanOCR strips common OCR artifacts: page markers, whitespace runs and
// stray pipe characters.
func CleanOCR(text string) string {
	if text == "" {
		return text
	}

	text = pageMarkerRe.ReplaceAllString(text, "\n")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	text = spaceRunsRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "|", "")

	return strings.TrimSpace(text)
}
