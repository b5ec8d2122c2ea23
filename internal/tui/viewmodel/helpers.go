package viewmodel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals; negative amounts get a leading minus.
func FormatMoney(currency string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return fmt.Sprintf("-%s %s", currency, amount.Abs().StringFixed(2))
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}

// FormatSignedAmount renders a transaction amount with + for income and - for expense.
func FormatSignedAmount(currency string, t model.Transaction) string {
	sign := "-"
	if t.IsIncome() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s %s", sign, currency, t.Amount.Abs().StringFixed(2))
}

// TruncateString shortens s to maxLen characters, ending with an ellipsis when cut.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// Bar returns a text bar filled in proportion to share, a value between 0 and 100.
func Bar(share float64, width int) string {
	if width <= 0 {
		return ""
	}
	share = min(max(share, 0), 100)
	filled := int(float64(width) * share / 100)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
