package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combination is one concrete variant produced by choosing one value from
// each option group. It is the in-memory working form used while drafting;
// Variant is its persisted counterpart.
type Combination struct {
	// ID is the persisted variant record this combination corresponds to,
	// nil when the combination has not been saved yet.
	ID        *uuid.UUID
	Name      string
	Signature string
	SKU       string
	Price     decimal.Decimal
	Active    bool
	// StockItemID references the per-warehouse stock row carried across
	// regenerations for surviving signatures.
	StockItemID *uuid.UUID
	IsNew       bool
}

// GenerateVariants expands option groups into the full set of value
// combinations. Groups without values are skipped; if nothing remains the
// result is empty and the caller keeps its single implicit default variant.
// Expansion order is deterministic: the first group varies slowest.
func GenerateVariants(options []OptionGroup, defaultPrice decimal.Decimal) []Combination {
	groups := make([]OptionGroup, 0, len(options))
	for _, g := range options {
		values := make([]string, 0, len(g.Values))
		for _, v := range g.Values {
			if normalizeValue(v) != "" {
				values = append(values, strings.TrimSpace(v))
			}
		}
		if len(values) > 0 {
			groups = append(groups, OptionGroup{Name: g.Name, Values: values})
		}
	}
	if len(groups) == 0 {
		return []Combination{}
	}

	groupNames := make([]string, len(groups))
	for i, g := range groups {
		groupNames[i] = g.Name
	}

	// Iterative expansion: start with one empty tuple, multiply out every
	// partial tuple by each value of the next group.
	tuples := [][]string{{}}
	for _, g := range groups {
		next := make([][]string, 0, len(tuples)*len(g.Values))
		for _, partial := range tuples {
			for _, value := range g.Values {
				tuple := make([]string, len(partial), len(partial)+1)
				copy(tuple, partial)
				next = append(next, append(tuple, value))
			}
		}
		tuples = next
	}

	combinations := make([]Combination, 0, len(tuples))
	for _, tuple := range tuples {
		combinations = append(combinations, Combination{
			Name:      DisplayName(groupNames, tuple),
			Signature: Signature(tuple),
			SKU:       "",
			Price:     defaultPrice,
			Active:    true,
			IsNew:     true,
		})
	}
	return combinations
}
