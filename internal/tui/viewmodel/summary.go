package viewmodel

// Standing messages shown under the balance.
const (
	GoodStandingMessage = "You are in good standing"
	OverspentMessage    = "You have overspent this month"
)

// SummaryView holds the formatted summary cards.
type SummaryView struct {
	Income       string
	Expense      string
	Balance      string
	MonthSpent   string
	Standing     string
	GoodStanding bool
}

// SliceView is one category of the expense chart.
type SliceView struct {
	Label string
	Value string
	Share float64 // percent of the chart total
}
