// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether money came in or went out.
type TransactionType string

const (
	// TypeIncome marks money received.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money spent.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q (want income or expense)", s)
	}
	return t, nil
}

// Transaction is a single income or expense record owned by a user.
// The server owns it; the client only holds the copy from the last dashboard fetch.
type Transaction struct {
	Amount   decimal.Decimal `json:"amount"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Type     TransactionType `json:"type"`
	Date     string          `json:"date"` // server-assigned, YYYY-MM-DD
	ID       int64           `json:"id"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// SignedAmount returns the amount with expenses negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Draft is the client-side form of a transaction before it is sent to the server.
// A zero ID means the draft creates a new record; otherwise it replaces record ID.
type Draft struct {
	Amount   decimal.Decimal
	Title    string
	Category string
	Type     TransactionType
	ID       int64
}

// IsNew reports whether saving the draft creates a record.
func (d Draft) IsNew() bool {
	return d.ID == 0
}

// DraftFrom prepares an edit form for an existing transaction.
func DraftFrom(t Transaction) Draft {
	return Draft{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   t.Amount,
		Category: t.Category,
		Type:     t.Type,
	}
}
