package tui

import "github.com/Veraticus/tally/internal/model"

// Session messages.
type loggedInMsg struct {
	err  error
	user model.User
}

type registeredMsg struct {
	err error
}

type loggedOutMsg struct {
	err error
}

type profileSavedMsg struct {
	err  error
	user model.User
}

// Ledger messages. action names what was done for the status line.
type ledgerUpdatedMsg struct {
	err    error
	action string
}

type trashLoadedMsg struct {
	err   error
	trash []model.Transaction
}

type restoredMsg struct {
	err   error
	trash []model.Transaction
}
