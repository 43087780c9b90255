package shared

// DomainError is an error with a stable, machine-readable code. Codes are
// part of the API contract; the HTTP layer maps them to status codes and
// clients branch on them.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinel errors shared across domains. Domain-specific rules mint their
// own codes with NewDomainError at the point of violation.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "insufficient stock available")
	ErrCapacityExceeded    = NewDomainError("CAPACITY_EXCEEDED", "requested party size exceeds remaining capacity")
)
