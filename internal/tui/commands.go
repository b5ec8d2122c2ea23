package tui

import (
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Every command runs one blocking operation off the UI goroutine and reports back with a message.

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Login(m.ctx, email, password)
		return loggedInMsg{user: user, err: err}
	}
}

func (m Model) register(in session.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		return registeredMsg{err: m.session.Register(m.ctx, in)}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.session.Logout(m.ctx)}
	}
}

func (m Model) saveProfile(in session.ProfileInput) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.UpdateProfile(m.ctx, in)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return ledgerUpdatedMsg{err: m.engine.Refresh(m.ctx)}
	}
}

func (m Model) saveTransaction(d model.Draft) tea.Cmd {
	action := "Transaction added"
	if !d.IsNew() {
		action = "Transaction updated"
	}
	return func() tea.Msg {
		return ledgerUpdatedMsg{action: action, err: m.engine.SaveTransaction(m.ctx, d)}
	}
}

// deleteTransaction runs after the confirmation dialog, so the engine is told not to ask again.
func (m Model) deleteTransaction(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.engine.DeleteTransaction(m.ctx, id, engine.AlwaysConfirm)
		return ledgerUpdatedMsg{action: "Moved to trash", err: err}
	}
}

func (m Model) loadTrash() tea.Cmd {
	return func() tea.Msg {
		trash, err := m.engine.ListTrash(m.ctx)
		return trashLoadedMsg{trash: trash, err: err}
	}
}

func (m Model) restoreTransaction(id int64) tea.Cmd {
	return func() tea.Msg {
		trash, err := m.engine.RestoreTransaction(m.ctx, id)
		return restoredMsg{trash: trash, err: err}
	}
}
