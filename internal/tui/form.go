package tui

import (
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formKind identifies what a form submits.
type formKind int

const (
	formLogin formKind = iota
	formRegister
	formTransaction
	formProfile
)

// Field indexes, per form kind.
const (
	loginEmail = iota
	loginPassword
)

const (
	registerName = iota
	registerEmail
	registerPassword
	registerConfirm
)

const (
	txnTitle = iota
	txnAmount
	txnCategory
	txnType
)

const (
	profileName = iota
	profileEmail
	profilePassword
	profileConfirm
)

type fieldSpec struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	kind   formKind
	focus  int
	editID int64
}

func newForm(kind formKind, title string, specs ...fieldSpec) form {
	f := form{kind: kind, title: title}
	for _, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.SetValue(spec.value)
		in.CharLimit = 120
		in.Width = 32
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) setSuggestions(i int, suggestions []string) {
	f.inputs[i].ShowSuggestions = len(suggestions) > 0
	f.inputs[i].SetSuggestions(suggestions)
}

func (f *form) acceptSuggestion() {
	in := &f.inputs[f.focus]
	if !in.ShowSuggestions || in.Value() == "" {
		return
	}
	if s := in.CurrentSuggestion(); s != "" {
		in.SetValue(s)
	}
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update routes navigation keys and forwards everything else to the focused input.
// It reports whether the form was submitted.
func (f form) update(msg tea.Msg, keys KeyMap) (form, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Submit):
			if f.focus == len(f.inputs)-1 {
				return f, nil, true
			}
			f.move(1)
			return f, nil, false
		case key.Matches(msg, keys.NextField):
			f.acceptSuggestion()
			f.move(1)
			return f, nil, false
		case key.Matches(msg, keys.PrevField):
			f.move(-1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f form) view(theme themes.Theme, hint string) string {
	width := 0
	for _, l := range f.labels {
		width = max(width, lipgloss.Width(l))
	}

	lines := []string{theme.Title.Render(f.title)}
	for i, in := range f.inputs {
		label := theme.Subtitle.Width(width + 2).Render(f.labels[i])
		if i == f.focus {
			label = theme.Bold.Width(width + 2).Render(f.labels[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	if hint != "" {
		lines = append(lines, "", theme.Faint.Render(hint))
	}
	return strings.Join(lines, "\n")
}

func loginForm() form {
	return newForm(formLogin, "Log in",
		fieldSpec{label: "Email", placeholder: "you@example.com"},
		fieldSpec{label: "Password", secret: true},
	)
}

func registerForm() form {
	return newForm(formRegister, "Create an account",
		fieldSpec{label: "Full name"},
		fieldSpec{label: "Email", placeholder: "you@example.com"},
		fieldSpec{label: "Password", placeholder: "8+ chars, 1 number, 1 symbol", secret: true},
		fieldSpec{label: "Confirm", secret: true},
	)
}

func profileForm(name, email string) form {
	return newForm(formProfile, "Edit profile",
		fieldSpec{label: "Full name", value: name},
		fieldSpec{label: "Email", value: email},
		fieldSpec{label: "New password", placeholder: "leave blank to keep", secret: true},
		fieldSpec{label: "Confirm", secret: true},
	)
}

func transactionForm(d model.Draft, categories []string) form {
	title := "Add transaction"
	if !d.IsNew() {
		title = "Edit transaction"
	}
	amount := ""
	if d.Amount.IsPositive() {
		amount = d.Amount.String()
	}
	txnTypeValue := string(d.Type)
	if txnTypeValue == "" {
		txnTypeValue = string(model.TypeExpense)
	}

	f := newForm(formTransaction, title,
		fieldSpec{label: "Title", value: d.Title},
		fieldSpec{label: "Amount", placeholder: "0.00", value: amount},
		fieldSpec{label: "Category", placeholder: model.DefaultCategory, value: d.Category},
		fieldSpec{label: "Type", placeholder: "income or expense", value: txnTypeValue},
	)
	f.editID = d.ID
	f.setSuggestions(txnCategory, categories)
	f.setSuggestions(txnType, []string{string(model.TypeExpense), string(model.TypeIncome)})
	return f
}

// draft reads a transaction form. Amount and type are checked here; the engine checks the rest.
func (f form) draft() (model.Draft, error) {
	amount, err := engine.ParseAmount(f.value(txnAmount))
	if err != nil {
		return model.Draft{}, err
	}
	kind, err := model.ParseTransactionType(f.value(txnType))
	if err != nil {
		return model.Draft{}, common.NewValidationError("type", "Please choose income or expense.")
	}
	return model.Draft{
		ID:       f.editID,
		Title:    f.value(txnTitle),
		Amount:   amount,
		Category: f.value(txnCategory),
		Type:     kind,
	}, nil
}
