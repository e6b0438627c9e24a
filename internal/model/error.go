package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeNotLoaded           = "NOT_LOADED"
	ErrCodeDeleteNotConfirmed  = "DELETE_NOT_CONFIRMED"
	ErrCodeInvalidViewMode     = "INVALID_VIEW_MODE"
	ErrCodeInvalidParameter    = "INVALID_PARAMETER"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeNotificationMissing = "NOTIFICATION_NOT_FOUND"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrNotLoaded            = NewDomainError(ErrCodeNotLoaded, "Dashboard is still loading")
	ErrInvalidProduct       = NewDomainError(ErrCodeValidationFailed, "Product failed validation")
	ErrDeleteNotConfirmed   = NewDomainError(ErrCodeDeleteNotConfirmed, "Deletion was not confirmed")
	ErrInvalidViewMode      = NewDomainError(ErrCodeInvalidViewMode, "View mode must be card or list")
	ErrNotificationNotFound = NewDomainError(ErrCodeNotificationMissing, "Notification not found")
)

// Form field names used as keys in ValidationErrors.
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldStock       = "stock"
	FieldDescription = "description"
)

// ValidationErrors maps a form field name to its first failing message.
// An empty map means the form is valid.
type ValidationErrors map[string]string

// Valid reports whether no field failed.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return strings.Join(parts, "; ")
}
