package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
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

// NewFieldError creates a domain error that names the offending field
func NewFieldError(code, message, field string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Error codes for schema and approval-workflow failures. Handlers map these
// onto HTTP statuses in interfaces/http/dto.
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeReference       = "REFERENCE_ERROR"
	ErrCodeType            = "TYPE_ERROR"
	ErrCodeUnresolvedField = "UNRESOLVED_FIELD"
	ErrCodeCyclicFormula   = "CYCLIC_FORMULA"
	ErrCodeEvaluation      = "EVALUATION_ERROR"
	ErrCodeConfig          = "CONFIG_ERROR"
	ErrCodeApproval        = "APPROVAL_ERROR"
	ErrCodeFieldInUse      = "FIELD_IN_USE"
)
