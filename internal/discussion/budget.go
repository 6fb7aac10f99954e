package discussion

import (
	"regexp"
	"strings"

	"github.com/civicdata-il/protokol/internal/hebrew"
	"github.com/civicdata-il/protokol/internal/model"
)

var (
	amountRe         = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d{4,})\s*(?:₪|ש["״']?ח|שקל(?:ים)?\s*חדשים)`)
	bareShekelRe     = regexp.MustCompile(`(?:₪|ש["״']?ח)\s*(\d{1,3}(?:,\d{3})+|\d{4,})`)
	fundingHeaderRe  = regexp.MustCompile(`מקורות?\s+מימון`)
	fundingLineRe    = regexp.MustCompile(`([א-ת][א-ת\s"״']{2,40}?)\s*[:\-]\s*(\d{1,3}(?:,\d{3})+|\d{4,})`)
	budgetSectionRes = []*regexp.Regexp{
		regexp.MustCompile(`תב["״']?ר`),
		regexp.MustCompile(`תקציב`),
		regexp.MustCompile(`הגדלת\s+תקציב`),
		regexp.MustCompile(`עדכון\s+תקציב`),
	}
)

// ExtractBudget pulls monetary amounts from discussion text. OCR mirror
// damage to digit groups is repaired before amounts are read, so
// "000,052" counts as 250,000. The largest amount found is taken as the
// item total.
func ExtractBudget(text string) *model.BudgetInfo {
	if text == "" {
		return nil
	}
	text = hebrew.RepairNumerals(text)

	var amounts []int64
	for _, m := range amountRe.FindAllStringSubmatch(text, -1) {
		if v := hebrew.ParseAmount(m[1]); v > 0 {
			amounts = append(amounts, v)
		}
	}
	for _, m := range bareShekelRe.FindAllStringSubmatch(text, -1) {
		if v := hebrew.ParseAmount(m[1]); v > 0 {
			amounts = append(amounts, v)
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	budget := &model.BudgetInfo{
		Currency:   "ILS",
		Confidence: 0.7,
		RawText:    clipText(text, 500),
	}
	for _, v := range amounts {
		if v > budget.Total {
			budget.Total = v
		}
	}
	for _, re := range budgetSectionRes {
		if re.MatchString(text) {
			budget.Confidence = 0.8
			break
		}
	}
	budget.Sources = extractFundingSources(text)
	return budget
}

// extractFundingSources reads the מקורות מימון block, one "name: amount"
// line per source.
func extractFundingSources(text string) []model.FundingSource {
	loc := fundingHeaderRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	block := text[loc[1]:]
	if cut := strings.Index(block, "\n\n"); cut > 0 {
		block = block[:cut]
	}

	var sources []model.FundingSource
	seen := make(map[string]bool)
	for _, m := range fundingLineRe.FindAllStringSubmatch(block, -1) {
		amount := hebrew.ParseAmount(m[2])
		if amount <= 0 {
			continue
		}
		name := strings.TrimSpace(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		sources = append(sources, model.FundingSource{
			Name:   name,
			Amount: amount,
		})
	}
	return sources
}
