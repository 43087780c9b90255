package persistence

import (
	"strings"

	"github.com/growbro/backend/internal/domain/shared"
)

// normalizePagination clamps page and page size to sane defaults so
// pagination math never divides by zero.
func normalizePagination(filter *shared.Filter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
}

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns DESC for anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist.
// Returns defaultField when the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"status":     true,
}

// VariantSortFields contains allowed sort fields for variants
var VariantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sku":        true,
	"signature":  true,
	"price":      true,
	"status":     true,
}

// MovementSortFields contains allowed sort fields for stock movements
var MovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"type":       true,
	"reference":  true,
}

// ResourceSortFields contains allowed sort fields for bookable resources
var ResourceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"capacity":   true,
}

// ReservationSortFields contains allowed sort fields for reservations
var ReservationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"slot_start": true,
	"status":     true,
}
