package viewmodel

import (
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"10", "Rs 10.00"},
		{"0", "Rs 0.00"},
		{"-42.5", "-Rs 42.50"},
		{"1234.567", "Rs 1234.57"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney("Rs", decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatSignedAmount(t *testing.T) {
	income := model.Transaction{Amount: decimal.NewFromInt(10), Type: model.TypeIncome}
	expense := model.Transaction{Amount: decimal.NewFromInt(10), Type: model.TypeExpense}

	assert.Equal(t, "+Rs 10.00", FormatSignedAmount("Rs", income))
	assert.Equal(t, "-Rs 10.00", FormatSignedAmount("Rs", expense))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "Groce...", TruncateString("Groceries and more", 8))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "café...", TruncateString("café au lait", 7))
}

func TestSanitizeForDisplay(t *testing.T) {
	assert.Equal(t, "a b c", SanitizeForDisplay("a\nb\x00  c"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██░░", Bar(50, 4))
	assert.Equal(t, "████", Bar(150, 4))
	assert.Equal(t, "", Bar(50, 0))
}

func TestPanel_Next(t *testing.T) {
	assert.Equal(t, PanelTransactions, PanelDashboard.Next())
	assert.Equal(t, PanelDashboard, PanelSettings.Next())
	assert.Equal(t, "Settings", PanelSettings.String())
}
