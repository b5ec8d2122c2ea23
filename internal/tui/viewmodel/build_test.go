package viewmodel

import (
	"testing"

	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() engine.State {
	return engine.State{
		User:   model.User{ID: 1, FullName: "Asha Rao", Email: "asha@example.com"},
		Loaded: true,
		Transactions: []model.Transaction{
			{ID: 1, Title: "Salary", Amount: decimal.NewFromInt(5000), Type: model.TypeIncome, Category: "Work", Date: "2024-05-01"},
			{ID: 2, Title: "Rent", Amount: decimal.NewFromInt(1500), Type: model.TypeExpense, Category: "Housing", Date: "2024-05-02"},
			{ID: 3, Title: "Coffee", Amount: decimal.RequireFromString("3.5"), Type: model.TypeExpense, Category: "Food", Date: "2024-05-03"},
			{ID: 4, Title: "Bonus", Amount: decimal.NewFromInt(200), Type: model.TypeIncome, Category: "Work", Date: "2024-05-04"},
		},
		Financials: model.Financials{
			Income:  decimal.NewFromInt(5200),
			Expense: decimal.RequireFromString("1503.5"),
			Balance: decimal.RequireFromString("3696.5"),
		},
		Chart: model.ChartData{
			Labels: []string{"Housing", "Food"},
			Values: []decimal.Decimal{decimal.NewFromInt(75), decimal.NewFromInt(25)},
		},
	}
}

func TestBuild_FiltersTable(t *testing.T) {
	view := Build(sampleState(), model.Filter{Type: "income", Category: model.FilterAll}, nil, PanelTransactions, "Rs")

	require.Len(t, view.Table.Rows, 2)
	assert.Equal(t, "Salary", view.Table.Rows[0].Title)
	assert.Equal(t, "Bonus", view.Table.Rows[1].Title)
	assert.Equal(t, "+Rs 5000.00", view.Table.Rows[0].Amount)
	assert.Equal(t, PanelTransactions, view.Panel)
}

func TestBuild_EmptyStates(t *testing.T) {
	view := Build(sampleState(), model.Filter{Type: "all", Category: "Travel"}, nil, PanelSettings, "Rs")

	assert.True(t, view.Table.IsEmpty())
	assert.Equal(t, EmptyTransactions, view.Table.Empty)
	assert.True(t, view.Trash.IsEmpty())
	assert.Equal(t, EmptyTrash, view.Trash.Empty)

	empty := Build(engine.State{}, model.NoFilter(), nil, PanelDashboard, "Rs")
	assert.Equal(t, EmptyTransactions, empty.Recent.Empty)
	assert.Nil(t, empty.Chart)
	assert.Nil(t, empty.Categories)
}

func TestBuild_Summary(t *testing.T) {
	view := Build(sampleState(), model.NoFilter(), nil, PanelDashboard, "Rs")
	assert.Equal(t, "Rs 5200.00", view.Summary.Income)
	assert.Equal(t, "Rs 1503.50", view.Summary.Expense)
	assert.Equal(t, "Rs 3696.50", view.Summary.Balance)
	assert.Equal(t, GoodStandingMessage, view.Summary.Standing)

	overspent := sampleState()
	overspent.Financials.Balance = decimal.NewFromInt(-20)
	view = Build(overspent, model.NoFilter(), nil, PanelDashboard, "Rs")
	assert.Equal(t, "-Rs 20.00", view.Summary.Balance)
	assert.False(t, view.Summary.GoodStanding)
	assert.Equal(t, OverspentMessage, view.Summary.Standing)
}

func TestBuild_RecentAndCategories(t *testing.T) {
	snap := sampleState()
	for i := range 4 {
		snap.Transactions = append(snap.Transactions, model.Transaction{
			ID: int64(10 + i), Title: "Extra", Amount: decimal.NewFromInt(1), Type: model.TypeExpense, Category: "Food",
		})
	}

	view := Build(snap, model.NoFilter(), nil, PanelDashboard, "Rs")
	require.Len(t, view.Recent.Rows, RecentLimit)
	assert.Equal(t, int64(1), view.Recent.Rows[0].ID)
	assert.Equal(t, []string{"Work", "Housing", "Food"}, view.Categories)
	assert.Equal(t, "A", view.User.Initial)
}

func TestBuild_Chart(t *testing.T) {
	view := Build(sampleState(), model.NoFilter(), nil, PanelDashboard, "Rs")

	require.Len(t, view.Chart, 2)
	assert.Equal(t, "Housing", view.Chart[0].Label)
	assert.Equal(t, "Rs 75.00", view.Chart[0].Value)
	assert.InDelta(t, 75.0, view.Chart[0].Share, 0.001)
	assert.InDelta(t, 25.0, view.Chart[1].Share, 0.001)
}

func TestBuild_Trash(t *testing.T) {
	trash := []model.Transaction{{ID: 8, Title: "Old", Amount: decimal.NewFromInt(10), Type: model.TypeExpense}}
	view := Build(sampleState(), model.NoFilter(), trash, PanelSettings, "Rs")

	require.Len(t, view.Trash.Rows, 1)
	assert.Equal(t, "-Rs 10.00", view.Trash.Rows[0].Amount)
	assert.Empty(t, view.Trash.Rows[0].Category, "trash rows carry no category")
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	snap := sampleState()
	_ = Build(snap, model.Filter{Type: "expense", Category: model.FilterAll}, nil, PanelTransactions, "Rs")
	assert.Len(t, snap.Transactions, 4)
	assert.Equal(t, "Salary", snap.Transactions[0].Title)
}

func TestTransactionsTable(t *testing.T) {
	assert.True(t, TransactionsTable(nil, "Rs").IsEmpty())
	assert.Equal(t, EmptyTransactions, TransactionsTable(nil, "Rs").Empty)

	table := TransactionsTable(sampleState().Transactions, "Rs")
	assert.Len(t, table.Rows, len(sampleState().Transactions))

	uncategorized := []model.Transaction{{ID: 3, Title: "Coffee", Amount: decimal.NewFromInt(4), Type: model.TypeExpense}}
	assert.Equal(t, model.DefaultCategory, TransactionsTable(uncategorized, "Rs").Rows[0].Category)
	assert.Empty(t, TrashTable(uncategorized, "Rs").Rows[0].Category)
	assert.Equal(t, EmptyTrash, TrashTable(nil, "Rs").Empty)
}
