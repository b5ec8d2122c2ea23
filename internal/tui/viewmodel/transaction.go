package viewmodel

// Empty-state rows.
const (
	EmptyTransactions = "No transactions found."
	EmptyTrash        = "Trash is empty."
)

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 5

// TableView is a list of transaction rows, or an explicit empty message when there are none.
type TableView struct {
	Empty string
	Rows  []RowView
}

// RowView is one displayable transaction.
type RowView struct {
	Date     string
	Title    string
	Category string
	Type     string
	Amount   string
	ID       int64
	IsIncome bool
}

// IsEmpty returns true if there are no rows in the table.
func (tv TableView) IsEmpty() bool {
	return len(tv.Rows) == 0
}
