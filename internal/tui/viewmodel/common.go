// Package viewmodel turns engine snapshots into plain display data.
// Nothing here touches the network or the terminal.
package viewmodel

import (
	"fmt"

	"github.com/Veraticus/tally/internal/model"
)

// Panel identifies which of the mutually exclusive main panels is shown.
type Panel int

const (
	// PanelDashboard shows the summary cards, recent transactions and the chart.
	PanelDashboard Panel = iota
	// PanelTransactions shows the filterable transaction table.
	PanelTransactions
	// PanelSettings shows the profile form and the trash.
	PanelSettings
)

// Panels lists the panels in display order.
var Panels = []Panel{PanelDashboard, PanelTransactions, PanelSettings}

// AppView represents the entire application view model.
type AppView struct {
	User        UserView
	Filter      model.Filter
	Summary     SummaryView
	Table       TableView
	Recent      TableView
	Trash       TableView
	Chart       []SliceView
	Categories  []string
	KeyBindings []KeyBinding
	Panel       Panel
	Loaded      bool
}

// UserView is the signed-in user as shown in the header.
type UserView struct {
	Name    string
	Email   string
	Initial string
}

// KeyBinding represents a keyboard shortcut.
type KeyBinding struct {
	Key         string
	Description string
	IsActive    bool
}

// String returns a string representation of the panel.
func (p Panel) String() string {
	switch p {
	case PanelDashboard:
		return "Dashboard"
	case PanelTransactions:
		return "Transactions"
	case PanelSettings:
		return "Settings"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Next returns the panel after p, wrapping around.
func (p Panel) Next() Panel {
	return Panels[(int(p)+1)%len(Panels)]
}

// GetActiveKeyBindings returns only the currently active key bindings.
func (av AppView) GetActiveKeyBindings() []KeyBinding {
	var active []KeyBinding
	for _, kb := range av.KeyBindings {
		if kb.IsActive {
			active = append(active, kb)
		}
	}
	return active
}
