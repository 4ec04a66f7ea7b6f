package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientBalance  = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
	ErrInUse                = NewDomainError("IN_USE", "Resource is referenced by other records and cannot be removed")
	ErrStockWouldGoNegative = NewDomainError("STOCK_WOULD_GO_NEGATIVE", "Reversal would drive stock below zero; explicit confirmation required")
)

// Warning is a non-fatal consistency finding surfaced by an operation that
// still completed. Callers must log or display it; it never rolls back work.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewWarning creates a consistency warning
func NewWarning(code, message string) Warning {
	return Warning{Code: code, Message: message}
}
