// Package cli provides styled terminal output and line-based prompts for the command line.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Income shares the success color and expenses share the error color.
var (
	accent  = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	green   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	amber   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	red     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	blue    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	outline = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	strongStyle = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(outline).
			Padding(1, 2)
)

type messageKind int

const (
	kindSuccess messageKind = iota
	kindError
	kindWarning
	kindInfo
)

var messageStyles = map[messageKind]struct {
	icon  string
	style lipgloss.Style
}{
	kindSuccess: {"✓", lipgloss.NewStyle().Foreground(green)},
	kindError:   {"✗", lipgloss.NewStyle().Foreground(red)},
	kindWarning: {"!", lipgloss.NewStyle().Foreground(amber)},
	kindInfo:    {"i", lipgloss.NewStyle().Foreground(blue)},
}

func message(kind messageKind, text string) string {
	m := messageStyles[kind]
	return m.style.Render(m.icon + " " + text)
}

// FormatSuccess renders a confirmation line.
func FormatSuccess(text string) string { return message(kindSuccess, text) }

// FormatError renders an error line.
func FormatError(text string) string { return message(kindError, text) }

// FormatWarning renders a warning line.
func FormatWarning(text string) string { return message(kindWarning, text) }

// FormatInfo renders an informational line.
func FormatInfo(text string) string { return message(kindInfo, text) }

// FormatTitle renders a section heading.
func FormatTitle(title string) string { return titleStyle.Render(title) }

// FormatPrompt renders a prompt label followed by a space.
func FormatPrompt(prompt string) string { return promptStyle.Render(prompt + " ") }

func formatIncome(amount string) string  { return messageStyles[kindSuccess].style.Render(amount) }
func formatExpense(amount string) string { return messageStyles[kindError].style.Render(amount) }

func renderBox(title, content string) string {
	heading := titleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
