package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const chartBarWidth = 24

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == ScreenAuth {
		return m.renderAuth()
	}

	v := viewmodel.Build(m.snap, m.filter, m.trash, m.panel, m.currency)

	var body string
	switch m.panel {
	case viewmodel.PanelDashboard:
		body = m.renderDashboard(v)
	case viewmodel.PanelTransactions:
		body = m.renderTransactions(v)
	case viewmodel.PanelSettings:
		body = m.renderSettings(v)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(v),
		"",
		body,
		"",
		m.renderStatusBar(v),
	)

	switch m.overlay {
	case OverlayForm:
		return m.place(m.theme.Dialog.Render(m.form.view(m.theme, "Enter to save, Esc to cancel") + m.renderError()))
	case OverlayConfirmDelete:
		return m.place(m.theme.Dialog.Render(
			m.theme.Bold.Render("Move to trash?") + "\n\n" + m.theme.Faint.Render("y to confirm, n to cancel"),
		))
	case OverlayHelp:
		return m.place(m.theme.Dialog.Render(m.theme.Title.Render("Keys") + "\n" + m.help.FullHelpView(m.keymap.FullHelp())))
	}
	return screen
}

func (m Model) renderAuth() string {
	hint := "Ctrl+N to create an account"
	if m.authForm.kind == formRegister {
		hint = "Ctrl+N to log in instead"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("tally"),
		m.authForm.view(m.theme, hint),
	)
	if m.inFlight > 0 {
		content += "\n\n" + m.spinner.View() + " Working..."
	}
	if m.status != "" {
		content += "\n\n" + m.theme.StatusSuccess.Render(m.status)
	}
	content += m.renderError()

	return m.place(m.theme.BorderedBox.Render(content))
}

func (m Model) renderHeader(v viewmodel.AppView) string {
	tabs := make([]string, 0, len(viewmodel.Panels))
	for i, p := range viewmodel.Panels {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == v.Panel {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}

	user := m.theme.Selected.Render(" "+v.User.Initial+" ") + " " + m.theme.Normal.Render(v.User.Name)
	left := m.theme.Bold.Render("tally") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(user), 1)
	return left + strings.Repeat(" ", gap) + user
}

func (m Model) renderDashboard(v viewmodel.AppView) string {
	if !v.Loaded {
		return m.spinner.View() + " Loading dashboard..."
	}

	balanceStyle := m.theme.Income
	standingStyle := m.theme.StatusSuccess
	if !v.Summary.GoodStanding {
		balanceStyle = m.theme.Expense
		standingStyle = m.theme.StatusError
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Income", m.theme.Income.Render(v.Summary.Income)),
		m.card("Expense", m.theme.Expense.Render(v.Summary.Expense)),
		m.card("Balance", balanceStyle.Render(v.Summary.Balance)),
		m.card("Spent this month", m.theme.Normal.Render(v.Summary.MonthSpent)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		standingStyle.Render(v.Summary.Standing),
		"",
		m.theme.Subtitle.Render("Recent transactions"),
		m.renderTable(v.Recent, -1),
		"",
		m.theme.Subtitle.Render("Spending by category"),
		m.renderChart(v.Chart),
	)
}

func (m Model) renderTransactions(v viewmodel.AppView) string {
	filters := fmt.Sprintf("Type: %s   Category: %s", v.Filter.Type, v.Filter.Category)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Faint.Render(filters),
		"",
		m.renderTable(v.Table, m.cursor),
	)
}

func (m Model) renderSettings(v viewmodel.AppView) string {
	profile := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render("Profile"),
		m.theme.Normal.Render("Name:  "+v.User.Name),
		m.theme.Normal.Render("Email: "+v.User.Email),
		m.theme.Faint.Render("p to edit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		profile,
		"",
		m.theme.Subtitle.Render("Trash"),
		m.renderTable(v.Trash, m.trashCursor),
		m.theme.Faint.Render("r to restore the selected transaction"),
	)
}

func (m Model) card(title, value string) string {
	return m.theme.Card.Render(m.theme.Faint.Render(title) + "\n" + value)
}

// renderTable draws rows with the row at cursor highlighted; pass -1 for no cursor.
func (m Model) renderTable(t viewmodel.TableView, cursor int) string {
	if t.IsEmpty() {
		return m.theme.Faint.Render(t.Empty)
	}

	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, m.theme.Subtitle.Render(formatRow("Date", "Title", "Category", "Type", "Amount")))
	for i, r := range t.Rows {
		line := formatRow(r.Date, r.Title, r.Category, r.Type, r.Amount)
		switch {
		case i == cursor:
			line = m.theme.Highlighted.Render(line)
		case r.IsIncome:
			line = m.theme.Income.Render(line)
		default:
			line = m.theme.Expense.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatRow(date, title, category, kind, amount string) string {
	return fmt.Sprintf("%-10s  %-24s  %-14s  %-7s  %14s",
		viewmodel.TruncateString(date, 10),
		viewmodel.TruncateString(title, 24),
		viewmodel.TruncateString(category, 14),
		kind,
		amount,
	)
}

func (m Model) renderChart(slices []viewmodel.SliceView) string {
	if len(slices) == 0 {
		return m.theme.Faint.Render("No expenses to chart.")
	}

	lines := make([]string, 0, len(slices))
	for _, s := range slices {
		bar := viewmodel.Bar(s.Share, chartBarWidth)
		filled := strings.TrimRight(bar, "░")
		lines = append(lines, fmt.Sprintf("%-14s %s%s %5.1f%%  %s",
			viewmodel.TruncateString(s.Label, 14),
			m.theme.ProgressBar.Render(filled),
			m.theme.ProgressEmpty.Render(bar[len(filled):]),
			s.Share,
			s.Value,
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar(v viewmodel.AppView) string {
	var left string
	switch {
	case m.errMsg != "":
		left = m.theme.StatusError.Render(m.errMsg)
	case m.inFlight > 0:
		left = m.spinner.View() + " Syncing..."
	case m.status != "":
		left = m.theme.StatusSuccess.Render(m.status)
	}

	var keys []string
	for _, kb := range v.GetActiveKeyBindings() {
		keys = append(keys, kb.Key+" "+kb.Description)
	}
	right := m.theme.Faint.Render(strings.Join(keys, " • "))

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderError() string {
	if m.errMsg == "" {
		return ""
	}
	return "\n\n" + m.theme.StatusError.Render(m.errMsg)
}

func (m Model) place(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
