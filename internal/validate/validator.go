// Package validate runs pre-flight checks on incoming documents so the
// extraction pipeline never wastes model calls on text that is not a
// Hebrew protocol.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/civicdata-il/protokol/internal/model"
)

var protocolMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`פרוטוקול`),
	regexp.MustCompile(`לוקוטורפ`), // Mirror order
	regexp.MustCompile(`ישיבת?\s`),
	regexp.MustCompile(`מועצה|הצעומ`),
	regexp.MustCompile(`ועדה|הדעו`),
}

// Validator checks raw document text before extraction
type Validator struct {
	minLength      int
	minHebrewRatio float64
}

// NewValidator creates a validator from input bounds; zero values fall
// back to defaults.
func NewValidator(cfg model.InputConfig) *Validator {
	v := &Validator{
		minLength:      cfg.MinLength,
		minHebrewRatio: cfg.MinHebrewRatio,
	}
	if v.minLength <= 0 {
		v.minLength = 100
	}
	if v.minHebrewRatio <= 0 {
		v.minHebrewRatio = 0.3
	}
	return v
}

// Check inspects document text and returns an error describing the first
// failed requirement. A passing document may still extract poorly; this
// only rejects inputs that cannot be a protocol at all.
func (v *Validator) Check(text string) error {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < v.minLength {
		return fmt.Errorf("document too short: %d runes, need at least %d", len([]rune(trimmed)), v.minLength)
	}

	ratio := hebrewRatio(trimmed)
	if ratio < v.minHebrewRatio {
		return fmt.Errorf("hebrew ratio %.2f below minimum %.2f", ratio, v.minHebrewRatio)
	}

	for _, re := range protocolMarkerRes {
		if re.MatchString(trimmed) {
			return nil
		}
	}
	return fmt.Errorf("no protocol markers found in document")
}

// hebrewRatio is the share of letters that are Hebrew. Digits, spaces and
// punctuation are ignored so OCR noise does not skew the measure.
func hebrewRatio(text string) float64 {
	letters, hebrew := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r >= 'א' && r <= 'ת' {
			hebrew++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(hebrew) / float64(letters)
}
