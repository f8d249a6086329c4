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

// Is matches domain errors by code, so errors.Is works across wrapping
// and across separately constructed instances of the same error
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	ErrItemNotFound          = NewDomainError("ITEM_NOT_FOUND", "Item not found")
	ErrAccountNotFound       = NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	ErrInsufficientStock     = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientLayers    = NewDomainError("INSUFFICIENT_LAYER_STOCK", "Cost layers cannot satisfy the requested quantity")
	ErrNegativeLayerQuantity = NewDomainError("NEGATIVE_LAYER_QUANTITY", "Cost layer quantity would go below zero")
	ErrLayerNotFound         = NewDomainError("LAYER_NOT_FOUND", "No cost layer exists at this unit cost")
	ErrUnbalancedJournal     = NewDomainError("UNBALANCED_JOURNAL", "Journal debits do not equal credits")
	ErrLinkedAccountMissing  = NewDomainError("LINKED_ACCOUNT_MISSING", "No linked ledger account is configured")
)
