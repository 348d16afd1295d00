package model

import "fmt"

// ErrorKind classifies a domain error so the transport layer can pick a status code.
type ErrorKind int

const (
	// KindInvalidInput covers malformed or missing request fields and unresolvable references.
	KindInvalidInput ErrorKind = iota + 1
	// KindNotFound is returned when the addressed entity does not exist.
	KindNotFound
	// KindConflict is a business rule violation against current state (e.g. stock).
	KindConflict
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeInvalidID               = "INVALID_ID"
	ErrCodeInvalidPagination       = "INVALID_PAGINATION"
	ErrCodeInvalidName             = "INVALID_NAME"
	ErrCodeInvalidPrice            = "INVALID_PRICE"
	ErrCodeInvalidStock            = "INVALID_STOCK"
	ErrCodeInvalidProductID        = "INVALID_PRODUCT_ID"
	ErrCodeInvalidProductReference = "INVALID_PRODUCT_REFERENCE"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeStockLimitExceeded      = "STOCK_LIMIT_EXCEEDED"
	ErrCodeOrderTotalTooLarge      = "ORDER_TOTAL_TOO_LARGE"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
	Kind    ErrorKind
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that errors carrying a formatted
// message still compare equal to their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// Common domain errors
var (
	ErrNameRequired            = NewDomainError(KindInvalidInput, ErrCodeInvalidName, "Name is required.")
	ErrInvalidPrice            = NewDomainError(KindInvalidInput, ErrCodeInvalidPrice, "Price must be greater than 0.")
	ErrPriceTooLarge           = NewDomainError(KindInvalidInput, ErrCodeInvalidPrice, "Price must be less than 1000000000.")
	ErrNegativeStock           = NewDomainError(KindInvalidInput, ErrCodeInvalidStock, "Stock cannot be negative.")
	ErrStockTooLarge           = NewDomainError(KindInvalidInput, ErrCodeInvalidStock, "Stock cannot exceed 2147483647.")
	ErrProductIDRequired       = NewDomainError(KindInvalidInput, ErrCodeInvalidProductID, "ProductId is required.")
	ErrInvalidQuantity         = NewDomainError(KindInvalidInput, ErrCodeInvalidQuantity, "Quantity must be greater than 0.")
	ErrInvalidProductReference = NewDomainError(KindInvalidInput, ErrCodeInvalidProductReference, "Invalid ProductId.")
	ErrInsufficientStock       = NewDomainError(KindConflict, ErrCodeInsufficientStock, "Insufficient stock.")
	ErrStockLimitExceeded      = NewDomainError(KindConflict, ErrCodeStockLimitExceeded, "Stock limit exceeded.")
	ErrOrderTotalTooLarge      = NewDomainError(KindConflict, ErrCodeOrderTotalTooLarge, "Order total is too large.")
	ErrProductNotFound         = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found.")
	ErrOrderNotFound           = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found.")
)

// OrderNotFound returns ErrOrderNotFound with the order id in the message.
func OrderNotFound(id int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeOrderNotFound, fmt.Sprintf("Order with ID %d not found.", id))
}

// ProductNotFound returns ErrProductNotFound with the product id in the message.
func ProductNotFound(id int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeProductNotFound, fmt.Sprintf("Product with ID %d not found.", id))
}
