package viewmodel

import (
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Build projects a snapshot onto the view for panel. It is a pure function of its inputs.
func Build(snap engine.State, filter model.Filter, trash []model.Transaction, panel Panel, currency string) AppView {
	return AppView{
		Panel:  panel,
		Loaded: snap.Loaded,
		Filter: filter,
		User: UserView{
			Name:    snap.User.FullName,
			Email:   snap.User.Email,
			Initial: snap.User.Initial(),
		},
		Summary:     buildSummary(snap.Financials, currency),
		Table:       TransactionsTable(filter.Apply(snap.Transactions), currency),
		Recent:      TransactionsTable(snap.Transactions[:min(RecentLimit, len(snap.Transactions))], currency),
		Trash:       TrashTable(trash, currency),
		Chart:       buildChart(snap.Chart, currency),
		Categories:  model.Categories(snap.Transactions),
		KeyBindings: keyBindings(panel),
	}
}

func buildSummary(f model.Financials, currency string) SummaryView {
	s := SummaryView{
		Income:       FormatMoney(currency, f.Income),
		Expense:      FormatMoney(currency, f.Expense),
		Balance:      FormatMoney(currency, f.Balance),
		MonthSpent:   FormatMoney(currency, f.MonthSpent),
		GoodStanding: f.InGoodStanding(),
		Standing:     OverspentMessage,
	}
	if s.GoodStanding {
		s.Standing = GoodStandingMessage
	}
	return s
}

// TransactionsTable builds a table for transactions that are not part of a snapshot.
func TransactionsTable(txns []model.Transaction, currency string) TableView {
	return buildTable(txns, currency, EmptyTransactions, model.DefaultCategory)
}

// TrashTable builds the trash listing. The server does not send categories for deleted
// transactions, so the column stays blank rather than guessing.
func TrashTable(txns []model.Transaction, currency string) TableView {
	return buildTable(txns, currency, EmptyTrash, "")
}

func buildTable(txns []model.Transaction, currency, empty, fallbackCategory string) TableView {
	if len(txns) == 0 {
		return TableView{Empty: empty}
	}

	rows := make([]RowView, 0, len(txns))
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = fallbackCategory
		}
		rows = append(rows, RowView{
			ID:       t.ID,
			Date:     t.Date,
			Title:    SanitizeForDisplay(t.Title),
			Category: category,
			Type:     string(t.Type),
			Amount:   FormatSignedAmount(currency, t),
			IsIncome: t.IsIncome(),
		})
	}
	return TableView{Rows: rows}
}

func buildChart(c model.ChartData, currency string) []SliceView {
	n := c.Len()
	if n == 0 {
		return nil
	}

	total := decimal.Zero
	for _, v := range c.Values[:n] {
		total = total.Add(v)
	}

	slices := make([]SliceView, 0, n)
	for i := range n {
		share := 0.0
		if total.IsPositive() {
			share = c.Values[i].Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		slices = append(slices, SliceView{
			Label: c.Labels[i],
			Value: FormatMoney(currency, c.Values[i]),
			Share: share,
		})
	}
	return slices
}

func keyBindings(panel Panel) []KeyBinding {
	return []KeyBinding{
		{Key: "1-3", Description: "panels", IsActive: true},
		{Key: "a", Description: "add", IsActive: panel != PanelSettings},
		{Key: "e", Description: "edit", IsActive: panel == PanelTransactions},
		{Key: "d", Description: "delete", IsActive: panel == PanelTransactions},
		{Key: "t/c", Description: "filter", IsActive: panel == PanelTransactions},
		{Key: "p", Description: "profile", IsActive: panel == PanelSettings},
		{Key: "r", Description: "restore", IsActive: panel == PanelSettings},
		{Key: "ctrl+r", Description: "refresh", IsActive: true},
		{Key: "L", Description: "logout", IsActive: true},
		{Key: "q", Description: "quit", IsActive: true},
	}
}
