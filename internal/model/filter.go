package model

// FilterAll matches any value of a filter field.
const FilterAll = "all"

// Filter narrows the cached transaction list for display.
type Filter struct {
	Type     string // all, income or expense
	Category string // all or a category name
}

// NoFilter matches every transaction.
func NoFilter() Filter {
	return Filter{Type: FilterAll, Category: FilterAll}
}

// Matches reports whether t passes both predicates. Empty fields behave like "all".
func (f Filter) Matches(t Transaction) bool {
	if f.Type != "" && f.Type != FilterAll && string(t.Type) != f.Type {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the matching transactions, keeping their original relative order.
// The input slice is never modified.
func (f Filter) Apply(txns []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsActive reports whether the filter excludes anything.
func (f Filter) IsActive() bool {
	return (f.Type != "" && f.Type != FilterAll) || (f.Category != "" && f.Category != FilterAll)
}
