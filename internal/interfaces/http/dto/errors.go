package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall through to 422 so new business rules
// never surface as 500s.
var domainErrorHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"SKU_TAKEN":            http.StatusConflict,

	// Malformed or invalid input -> 400
	"INVALID_INPUT":             http.StatusBadRequest,
	"INVALID_OPTION_NAME":       http.StatusBadRequest,
	"EMPTY_OPTION_VALUES":       http.StatusBadRequest,
	"DUPLICATE_OPTION_VALUE":    http.StatusBadRequest,
	"INVALID_PRODUCT_TITLE":     http.StatusBadRequest,
	"INVALID_PRODUCT_PRICE":     http.StatusBadRequest,
	"INVALID_VARIANT":           http.StatusBadRequest,
	"INVALID_VARIANT_NAME":      http.StatusBadRequest,
	"INVALID_VARIANT_PRICE":     http.StatusBadRequest,
	"INVALID_VARIANT_SIGNATURE": http.StatusBadRequest,
	"INVALID_VARIANT_SKU":       http.StatusBadRequest,
	"INVALID_WAREHOUSE":         http.StatusBadRequest,
	"INVALID_WAREHOUSE_CODE":    http.StatusBadRequest,
	"INVALID_WAREHOUSE_NAME":    http.StatusBadRequest,
	"INVALID_QUANTITY":          http.StatusBadRequest,
	"INVALID_RESOURCE_NAME":     http.StatusBadRequest,
	"INVALID_CAPACITY":          http.StatusBadRequest,
	"INVALID_SLOT_LENGTH":       http.StatusBadRequest,
	"INVALID_SLOT":              http.StatusBadRequest,
	"INVALID_PARTY_SIZE":        http.StatusBadRequest,
	"INVALID_CUSTOMER_NAME":     http.StatusBadRequest,
	"INVALID_HOLD":              http.StatusBadRequest,
	"INVALID_PROOF":             http.StatusBadRequest,
	"INVALID_TOKEN":             http.StatusBadRequest,

	// Business rule violations -> 422
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":       http.StatusUnprocessableEntity,
	"CAPACITY_EXCEEDED":        http.StatusUnprocessableEntity,
	"PRODUCT_ARCHIVED":         http.StatusUnprocessableEntity,
	"VARIANT_ARCHIVED":         http.StatusUnprocessableEntity,
	"RESOURCE_INACTIVE":        http.StatusUnprocessableEntity,
	"NO_CHANGE":                http.StatusUnprocessableEntity,
	"PROOF_MISSING":            http.StatusUnprocessableEntity,
	"SKU_GENERATION_EXHAUSTED": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
