package hebrew

import (
	"strings"
	"testing"
)

func TestRepairNumeralsReversedAmount(t *testing.T) {
	got := RepairNumerals(`תקציב בסך 000,052 ש"ח`)
	want := `תקציב בסך 250,000 ש"ח`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRepairNumeralsLeavesNormalAmounts(t *testing.T) {
	text := `תקציב בסך 250,000 ש"ח ועוד 1,500`
	if got := RepairNumerals(text); got != text {
		t.Errorf("normal amounts changed: %q", got)
	}
}

func TestRepairNumeralsEmpty(t *testing.T) {
	if got := RepairNumerals(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"1000":    "1,000",
		"250000":  "250,000",
		"1234567": "1,234,567",
	}
	for in, want := range cases {
		if got := GroupThousands(in); got != want {
			t.Errorf("GroupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{`250,000 ש"ח`, 250_000},
		{"₪ 1,500", 1_500},
		{"3000000", 3_000_000},
		{"", 0},
		{"אין סכום", 0},
	}
	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCleanOCR(t *testing.T) {
	in := "שורה ראשונה  --- Page 1 ---\n\n\n\nשורה | שניה"
	got := CleanOCR(in)
	for _, bad := range []string{"Page", "|", "\n\n\n"} {
		if strings.Contains(got, bad) {
			t.Errorf("CleanOCR left %q in %q", bad, got)
		}
	}
	if !strings.Contains(got, "שורה ראשונה") {
		t.Errorf("CleanOCR dropped content: %q", got)
	}
}
