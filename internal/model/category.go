package model

// DefaultCategory is used when a transaction is saved without a category.
const DefaultCategory = "General"

// Categories returns the distinct categories in txns in first-seen order.
func Categories(txns []Transaction) []string {
	seen := make(map[string]bool, len(txns))
	var out []string
	for _, t := range txns {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
