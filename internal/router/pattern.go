package router

import (
	"context"
	"regexp"
)

// Per-type pattern tables. Each category contributes its first matching
// pattern to the result data.
var patternTables = map[ExtractionType]map[string][]*regexp.Regexp{
	TypeVote: {
		"unanimous": {
			regexp.MustCompile(`פה\s*אחד`),
			regexp.MustCompile(`ללא\s+מתנגדים`),
			regexp.MustCompile(`אושר\s+פה\s*אחד`),
		},
		"yes": {
			regexp.MustCompile(`(\d+)\s*בעד`),
			regexp.MustCompile(`בעד[\s:-]+(\d+)`),
		},
		"no": {
			regexp.MustCompile(`(\d+)\s*נגד`),
			regexp.MustCompile(`נגד[\s:-]+(\d+)`),
		},
		"abstain": {
			regexp.MustCompile(`(\d+)\s*נמנע(?:ים)?`),
			regexp.MustCompile(`נמנע(?:ים)?[\s:-]+(\d+)`),
		},
	},
	TypeDecision: {
		"approved": {
			regexp.MustCompile(`אושר`),
			regexp.MustCompile(`התקבל`),
			regexp.MustCompile(`מאשרת`),
		},
		"rejected": {
			regexp.MustCompile(`נדחה`),
			regexp.MustCompile(`לא\s+אושר`),
		},
		"info": {
			regexp.MustCompile(`לידיעה`),
		},
	},
	TypeHeader: {
		"meeting_number": {
			regexp.MustCompile(`ישיבה\s*(?:מס['׳]?)?\s*(\d+)`),
		},
		"date": {
			regexp.MustCompile(`(\d{1,2})[/\.\-](\d{1,2})[/\.\-](20\d{2})`),
		},
	},
}

// PatternProvider evaluates fixed regex tables. Always available and free;
// confidence is the matched-to-available ratio boosted by a constant and
// capped below certainty, since a bare pattern match cannot validate
// semantic correctness.
type PatternProvider struct{}

func (p *PatternProvider) Name() Method { return MethodPattern }

func (p *PatternProvider) Available(ctx context.Context) bool { return true }

func (p *PatternProvider) Extract(ctx context.Context, text string, typ ExtractionType) Result {
	if text == "" {
		return Result{Method: MethodPattern, Error: "empty text"}
	}

	table := patternTables[typ]
	data := make(map[string]any)
	matched, total := 0, 0

	for category, patterns := range table {
		total += len(patterns)
		for _, re := range patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			matched++
			if len(m) > 1 {
				data[category] = m[1]
			} else {
				data[category] = m[0]
			}
			break
		}
	}

	if matched == 0 {
		return Result{Method: MethodPattern, Error: "no patterns matched"}
	}

	if total == 0 {
		total = 1
	}
	confidence := float64(matched)/float64(total) + 0.3
	if confidence > 0.9 {
		confidence = 0.9
	}

	return Result{
		Success:    true,
		Data:       data,
		Confidence: confidence,
		Method:     MethodPattern,
	}
}
