// Package category owns the fixed category vocabulary for tasting items.
//
// Stored items always carry one of the values in Options. Normalize maps
// arbitrary caller input onto that set, so the persistence layer never sees
// a category outside it.
package category

import "strings"

// Options is the full category set, in display order. "Other" is the
// catch-all and must stay last.
var Options = []string{
	"Fruits",
	"Vegetables",
	"Meats",
	"Seafood",
	"Grains",
	"Dairy",
	"Pastas",
	"Sauces",
	"Sweets",
	"Beverages",
	"Other",
}

// Other is the fallback category for unrecognized input.
const Other = "Other"

// Normalize maps input onto a member of Options. Matching is trimmed and
// case-insensitive; anything unrecognized (including the empty string)
// becomes Other. Normalize is idempotent.
func Normalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Other
	}
	for _, opt := range Options {
		if strings.ToLower(opt) == v {
			return opt
		}
	}
	return Other
}

// Valid reports whether value is already a member of Options.
func Valid(value string) bool {
	for _, opt := range Options {
		if opt == value {
			return true
		}
	}
	return false
}
