package sheets

import (
	"slices"
	"time"

	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// CategoryRow is one line of the spending breakdown.
type CategoryRow struct {
	Name   string
	Amount decimal.Decimal
	Share  float64
}

// Report is everything written to the spreadsheet in one export.
type Report struct {
	GeneratedAt  time.Time
	Owner        string
	Currency     string
	Financials   model.Financials
	Categories   []CategoryRow
	Transactions []model.Transaction
}

// NewReport builds a report from a loaded engine snapshot.
// Categories are ordered by amount, largest first; transactions newest first.
func NewReport(snap engine.State, currency string, now time.Time) Report {
	r := Report{
		GeneratedAt:  now,
		Owner:        snap.User.FullName,
		Currency:     currency,
		Financials:   snap.Financials,
		Transactions: slices.Clone(snap.Transactions),
	}

	total := decimal.Zero
	for i := range snap.Chart.Len() {
		total = total.Add(snap.Chart.Values[i])
	}
	for i := range snap.Chart.Len() {
		row := CategoryRow{Name: snap.Chart.Labels[i], Amount: snap.Chart.Values[i]}
		if total.IsPositive() {
			row.Share = row.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		r.Categories = append(r.Categories, row)
	}
	slices.SortStableFunc(r.Categories, func(a, b CategoryRow) int {
		return b.Amount.Cmp(a.Amount)
	})

	// Dates are YYYY-MM-DD so string order is date order.
	slices.SortStableFunc(r.Transactions, func(a, b model.Transaction) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return r
}
