package hebrew

import (
	"regexp"
	"strconv"
	"strings"
)

// A digit-reversed thousands-grouped amount: 1-3 leading zeros, a comma,
// then more groups ("000,052" is the mirror of "250,000").
var reversedNumberRe = regexp.MustCompile(`\b0{1,3},\d{1,3}(?:,\d{3})*\b`)

var amountJunkRe = regexp.MustCompile(`[₪ש"ח\s]`)

// RepairNumerals fixes currency amounts whose digit groups were read
// backwards by OCR. Amounts that do not match the reversed pattern pass
// through unchanged.
func RepairNumerals(text string) string {
	if text == "" {
		return text
	}

	return reversedNumberRe.ReplaceAllStringFunc(text, func(tok string) string {
		digits := strings.ReplaceAll(tok, ",", "")
		if !strings.HasPrefix(digits, "0") || strings.Trim(digits, "0") == "" {
			return tok
		}

		runes := []rune(digits)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		reversed := strings.TrimLeft(string(runes), "0")
		if reversed == "" {
			reversed = "0"
		}

		return GroupThousands(reversed)
	})
}

// GroupThousands re-inserts thousands separators every three digits from the
// right: "250000" -> "250,000".
func GroupThousands(digits string) string {
	var b strings.Builder
	n := len(digits)
	for i, d := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// ParseAmount parses a monetary string like "250,000 ש"ח" into currency
// units. Returns 0 when the token is not a usable amount.
func ParseAmount(s string) int64 {
	if s == "" {
		return 0
	}

	cleaned := amountJunkRe.ReplaceAllString(s, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	// Dots appearing more than once are thousands separators, not decimals
	if strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}
