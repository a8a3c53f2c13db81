package core

import (
	"errors"
	"strings"
)

// Category tags expenses and budgets. The set is closed.
type Category string

const (
	Food          Category = "FOOD"
	Transport     Category = "TRANSPORT"
	Utilities     Category = "UTILITIES"
	Entertainment Category = "ENTERTAINMENT"
	Education     Category = "EDUCATION"
	Others        Category = "OTHERS"
	Uncategorized Category = "UNCATEGORIZED"
)

// Categories lists every valid category in display order.
var Categories = []Category{Food, Transport, Utilities, Entertainment, Education, Others, Uncategorized}

var ErrInvalidCategory = errors.New("invalid category")

// ParseCategory matches s case-insensitively against the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// IsValid returns true if c belongs to the closed set.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// CategoryNames returns the valid categories joined for use in messages.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
