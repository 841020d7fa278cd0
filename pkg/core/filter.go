package core

import "strings"

// Criteria is the search/category selection applied to a collection.
type Criteria struct {
	Search   string
	Category string // "" or CategoryAll disables the category restriction; case-insensitive
}

// Filter returns the notes whose text or category contains Search
// (case-insensitive) and whose category equals Category.
// Source order is preserved and the input is never modified.
func Filter(notes []Note, c Criteria) []Note {
	term := strings.ToLower(c.Search)
	category := strings.ToLower(strings.TrimSpace(c.Category))
	anyCategory := category == "" || category == CategoryAll

	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		matchesSearch := strings.Contains(strings.ToLower(n.Text), term) ||
			strings.Contains(strings.ToLower(n.Category), term)
		matchesCategory := anyCategory || strings.ToLower(n.Category) == category
		if matchesSearch && matchesCategory {
			out = append(out, n)
		}
	}
	return out
}
