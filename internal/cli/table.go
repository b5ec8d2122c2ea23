package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/tui/viewmodel"
)

// PrintTable writes transaction rows as aligned columns, or the table's empty message.
func PrintTable(w io.Writer, t viewmodel.TableView) error {
	if t.IsEmpty() {
		_, err := fmt.Fprintln(w, mutedStyle.Render(t.Empty))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tTitle\tCategory\tType\tAmount\t")
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			r.ID, r.Date, viewmodel.TruncateString(r.Title, 32), r.Category, r.Type, r.Amount)
	}
	return tw.Flush()
}

// PrintSummary writes the summary cards and the standing message.
func PrintSummary(w io.Writer, s viewmodel.SummaryView) error {
	content := strings.Join([]string{
		fmt.Sprintf("Income:            %s", formatIncome(s.Income)),
		fmt.Sprintf("Expense:           %s", formatExpense(s.Expense)),
		fmt.Sprintf("Balance:           %s", strongStyle.Render(s.Balance)),
		fmt.Sprintf("Spent this month:  %s", s.MonthSpent),
	}, "\n")

	standing := FormatSuccess(s.Standing)
	if !s.GoodStanding {
		standing = FormatWarning(s.Standing)
	}

	_, err := fmt.Fprintln(w, renderBox("Summary", content)+"\n"+standing)
	return err
}

// PrintChart writes one bar per category.
func PrintChart(w io.Writer, slices []viewmodel.SliceView) error {
	if len(slices) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, FormatTitle("Spending by category")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range slices {
		fmt.Fprintf(tw, "%s\t%s\t%5.1f%%\t%s\n", s.Label, viewmodel.Bar(s.Share, 20), s.Share, s.Value)
	}
	return tw.Flush()
}
