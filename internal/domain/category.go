package domain

import "strings"

// FallbackCategoryColor is the colour of the default category and of any
// category whose colour is unknown.
const FallbackCategoryColor = "#334155"

// categoryPalette assigns colours to new categories in creation order.
var categoryPalette = []string{
	"#334155",
	"#2563eb",
	"#16a34a",
	"#d97706",
	"#dc2626",
	"#7c3aed",
	"#0891b2",
	"#db2777",
}

// Category is a user-defined grouping of tasks. Key is both the display
// name and the join key used by Task.Category; keys are unique ignoring case.
type Category struct {
	Key   string
	Color string
}

// DefaultCategories is the category set used when none can be loaded.
func DefaultCategories() []Category {
	return []Category{{Key: DefaultCategory, Color: FallbackCategoryColor}}
}

// PickColor returns the palette colour for the n-th category.
func PickColor(n int) string {
	if n < 0 {
		n = -n
	}
	return categoryPalette[n%len(categoryPalette)]
}

// NewCategory validates a category. An empty colour is picked from the
// palette using existing, the number of categories already registered.
func NewCategory(key, color string, existing int) (Category, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Category{}, ErrCategoryKeyRequired
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = PickColor(existing)
	}
	return Category{Key: key, Color: color}, nil
}

// FindCategory looks a key up case-insensitively.
func FindCategory(categories []Category, key string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Key, key) {
			return c, true
		}
	}
	return Category{}, false
}
