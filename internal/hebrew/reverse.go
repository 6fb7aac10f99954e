// Package hebrew repairs systematic OCR damage in Hebrew text: whole lines
// stored in mirror order (RTL read as LTR), final letter forms landing in the
// wrong position, and digit groups of currency amounts read backwards.
package hebrew

import (
	"regexp"
	"strings"
)

// Final letter forms are valid only at a word's end; their misplacement is
// the strongest reversal signal.
var finalToRegular = map[rune]rune{'ם': 'מ', 'ן': 'נ', 'ף': 'פ', 'ץ': 'צ', 'ך': 'כ'}

var regularToFinal = map[rune]rune{'מ': 'ם', 'נ': 'ן', 'פ': 'ף', 'צ': 'ץ', 'כ': 'ך'}

var hebrewWordRe = regexp.MustCompile(`[א-ת]+`)

// Mirror-order spellings of frequent names, roles and protocol terms.
// Any of these appearing as a substring marks the text as reversed.
var reversedFragments = []string{
	// First names
	"ןורש", "ןנור", "ןועמש", "ןרהא", "ןתנוי", "ןד", "ןור", "ןב",
	"הרש", "ריאמ", "יול", "יגח", "לאינד", "לכימ", "ילא", "הלא",
	// Surnames
	"ןהכ", "ןומימ", "ןמטור", "רלימ", "דעס", "קינזר", "ירשוב",
	"רקניפ", "סילקמ", "ןמנירג", "ץרפ", "ןמדירפ", "ןמרבליז",
	// Roles
	"ל\"כנמ", "לכנמ", "רבזג", "ש\"מעוי", "רקבמ", "סדנהמ", "להנמ",
	// Common protocol words
	"יפסכה", "רושיא", "הטלחה", "תנשל", "הייריעה", "הצעומה",
}

// Letters that commonly end a correctly ordered Hebrew word.
var commonEndLetters = map[rune]bool{'ה': true, 'ת': true, 'י': true}

// Letters that commonly begin one (articles, prepositions, conjunctions).
var commonStartLetters = map[rune]bool{
	'ה': true, 'ב': true, 'ו': true, 'ל': true, 'מ': true, 'ש': true, 'כ': true,
}

// DetectReversal reports whether text appears stored in mirror order, with a
// heuristic confidence. Checked in order of decreasing reliability: final
// forms at a word start, final forms strictly inside a word, known reversed
// fragments, then statistical letter-position counts.
func DetectReversal(text string) (bool, float64) {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 2 {
		return false, 0
	}

	words := hebrewWordRe.FindAllString(trimmed, -1)
	if len(words) == 0 {
		return false, 0
	}

	for _, w := range words {
		runes := []rune(w)
		if len(runes) > 1 {
			if _, ok := finalToRegular[runes[0]]; ok {
				return true, 0.95
			}
		}
		if len(runes) > 2 {
			for _, r := range runes[1 : len(runes)-1] {
				if _, ok := finalToRegular[r]; ok {
					return true, 0.9
				}
			}
		}
	}

	for _, frag := range reversedFragments {
		if strings.Contains(trimmed, frag) {
			return true, 0.85
		}
	}

	// Statistical fallback over words of length >2: reversed text tends to
	// begin words with common endings and end them with common beginnings.
	var eligible, startAsEnd, endAsStart int
	for _, w := range words {
		runes := []rune(w)
		if len(runes) <= 2 {
			continue
		}
		eligible++
		if commonEndLetters[runes[0]] {
			startAsEnd++
		}
		if commonStartLetters[runes[len(runes)-1]] {
			endAsStart++
		}
	}
	if eligible > 0 {
		if float64(startAsEnd) >= float64(eligible)*0.5 {
			return true, 0.7
		}
		if float64(endAsStart) >= float64(eligible)*0.6 {
			return true, 0.6
		}
	}

	return false, 0.2
}

var wordTokenRe = regexp.MustCompile(`\S+`)

// NormalizeFinalLetters fixes letter forms after a character-order reversal:
// a final form not in trailing position becomes regular, and a regular form
// at a word's end becomes its final counterpart. Words are bounded by any
// whitespace, so line breaks do not merge adjacent words.
func NormalizeFinalLetters(text string) string {
	if text == "" {
		return text
	}

	return wordTokenRe.ReplaceAllStringFunc(text, func(word string) string {
		runes := []rune(word)
		for i, r := range runes {
			if i == len(runes)-1 {
				if f, ok := regularToFinal[r]; ok {
					runes[i] = f
				}
			} else if reg, ok := finalToRegular[r]; ok {
				runes[i] = reg
			}
		}
		return string(runes)
	})
}

// Repair reverses the rune sequence and restores final letter forms.
// Naive reversal alone inverts letter-form placement, hence the second pass.
func Repair(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return NormalizeFinalLetters(string(runes))
}

// RepairIfReversed returns text with reversal repaired when detected,
// unchanged otherwise. Idempotent on correctly ordered text.
func RepairIfReversed(text string) string {
	if reversed, _ := DetectReversal(text); reversed {
		return Repair(text)
	}
	return text
}

// IsLineReversed is the cheap per-line check used during roster parsing:
// a final form opening a word, or a known reversed fragment.
func IsLineReversed(line string) bool {
	for _, w := range strings.Fields(line) {
		runes := []rune(w)
		if len(runes) > 1 {
			if _, ok := finalToRegular[runes[0]]; ok {
				return true
			}
		}
	}
	for _, frag := range reversedFragments {
		if strings.Contains(line, frag) {
			return true
		}
	}
	return false
}
