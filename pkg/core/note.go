package core

import (
	"fmt"
	"slices"
	"strings"
)

// CategoryNone marks a note that was saved without a category.
const CategoryNone = "none"

// CategoryAll is the filter sentinel that disables category restriction.
const CategoryAll = "all"

var categories = []string{"personal", "work", "ideas", "todo", "other"}

// Note is the central entity of the domain.
// The JSON shape is the persisted slot format and must not change.
type Note struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"` // Unix epoch milliseconds
}

// Categories returns the fixed set of selectable categories.
func Categories() []string {
	return slices.Clone(categories)
}

// NormalizeCategory maps user input onto the fixed category set.
// Empty input becomes CategoryNone.
func NormalizeCategory(category string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == CategoryNone {
		return CategoryNone, nil
	}
	if !slices.Contains(categories, c) {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	return c, nil
}
