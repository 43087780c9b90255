package catalog

import (
	"fmt"
	"strings"

	"github.com/growbro/backend/internal/domain/shared"
)

// OptionGroup is a named axis of product variation (e.g. "Size") with an
// ordered set of possible values. Option groups are transient: only the
// variant combinations generated from them are persisted.
type OptionGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// NewOptionGroup creates an option group with the given name and values
func NewOptionGroup(name string, values ...string) OptionGroup {
	return OptionGroup{Name: name, Values: values}
}

// normalizeValue trims and lowercases an option value so that identity
// comparisons are whitespace- and case-insensitive.
func normalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ValidateOptionGroups checks a draft list of option groups.
// An empty list is valid and means the product has no variants.
// It fails if any group has a blank name, has no values, or contains two
// values that collapse to the same normalized form.
func ValidateOptionGroups(options []OptionGroup) error {
	for _, group := range options {
		if strings.TrimSpace(group.Name) == "" {
			return shared.NewDomainError("INVALID_OPTION_NAME", "Option group name cannot be blank")
		}
		seen := make(map[string]struct{}, len(group.Values))
		for _, value := range group.Values {
			normalized := normalizeValue(value)
			if normalized == "" {
				// Blank values are dropped at generation time, not an error.
				continue
			}
			if _, dup := seen[normalized]; dup {
				return shared.NewDomainError("DUPLICATE_OPTION_VALUE",
					fmt.Sprintf("Option group %q contains duplicate value %q", group.Name, value))
			}
			seen[normalized] = struct{}{}
		}
		if len(seen) == 0 {
			return shared.NewDomainError("EMPTY_OPTION_VALUES",
				fmt.Sprintf("Option group %q must have at least one value", group.Name))
		}
	}
	return nil
}
