package model

import "github.com/shopspring/decimal"

// Financials is the server-computed summary that accompanies every dashboard fetch.
type Financials struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
	MonthSpent decimal.Decimal `json:"month_spent"`
}

// InGoodStanding reports whether the balance is not negative.
func (f Financials) InGoodStanding() bool {
	return !f.Balance.IsNegative()
}

// ChartData holds expense totals per category as parallel label/value slices.
type ChartData struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// Len returns the number of usable label/value pairs.
func (c ChartData) Len() int {
	return min(len(c.Labels), len(c.Values))
}

// Dashboard is the single read result: transactions, summary and chart arrive together.
type Dashboard struct {
	Transactions []Transaction `json:"transactions"`
	Financials   Financials    `json:"financials"`
	Chart        ChartData     `json:"chart_data"`
}
