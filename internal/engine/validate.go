package engine

import (
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// InvalidAmountMessage is shown when an amount is missing, not a number, or not positive.
const InvalidAmountMessage = "Please enter a valid amount greater than 0."

// ParseAmount reads user input as a strictly positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, common.NewValidationError("amount", InvalidAmountMessage)
	}
	return amount, nil
}

// ValidateDraft checks a draft before it is sent to the server.
func ValidateDraft(d model.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return common.NewValidationError("title", "Please enter a title.")
	}
	if !d.Amount.IsPositive() {
		return common.NewValidationError("amount", InvalidAmountMessage)
	}
	if !d.Type.Valid() {
		return common.NewValidationError("type", "Please choose income or expense.")
	}
	return nil
}

func normalizeDraft(d model.Draft) model.Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	if d.Category == "" {
		d.Category = model.DefaultCategory
	}
	return d
}
