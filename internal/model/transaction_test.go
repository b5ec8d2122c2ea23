package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType(" Income ")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, got)

	got, err = ParseTransactionType("expense")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, got)

	_, err = ParseTransactionType("transfer")
	assert.Error(t, err)
}

func TestTransaction_SignedAmount(t *testing.T) {
	in := Transaction{Type: TypeIncome, Amount: decimal.RequireFromString("12.50")}
	out := Transaction{Type: TypeExpense, Amount: decimal.RequireFromString("12.50")}

	assert.Equal(t, "12.5", in.SignedAmount().String())
	assert.Equal(t, "-12.5", out.SignedAmount().String())
}

func TestDraft(t *testing.T) {
	txn := Transaction{ID: 7, Title: "Rent", Category: "home", Type: TypeExpense, Amount: decimal.NewFromInt(900)}
	d := DraftFrom(txn)

	assert.False(t, d.IsNew())
	assert.Equal(t, "Rent", d.Title)
	assert.True(t, d.Amount.Equal(txn.Amount))
	assert.True(t, Draft{}.IsNew())
}

func TestUser_Initial(t *testing.T) {
	assert.Equal(t, "A", User{FullName: "ada lovelace"}.Initial())
	assert.Equal(t, "?", User{}.Initial())
}

func TestFinancials_InGoodStanding(t *testing.T) {
	assert.True(t, Financials{Balance: decimal.Zero}.InGoodStanding())
	assert.False(t, Financials{Balance: decimal.NewFromInt(-1)}.InGoodStanding())
}

func TestChartData_Len(t *testing.T) {
	c := ChartData{Labels: []string{"a", "b", "c"}, Values: []decimal.Decimal{decimal.NewFromInt(1)}}
	assert.Equal(t, 1, c.Len())
}
