package models

// APIError represents a standardized error response for the station API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Cashier-flow errors
	ErrInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrMenuUnavailable      = "MENU_UNAVAILABLE"
	ErrCartEmpty            = "CART_EMPTY"
	ErrCartLineNotFound     = "CART_LINE_NOT_FOUND"
	ErrCheckoutLocked       = "CHECKOUT_LOCKED"
	ErrCheckoutBusy         = "CHECKOUT_BUSY"
	ErrInvalidTransition    = "INVALID_CHECKOUT_TRANSITION"
	ErrOrderCreationFailed  = "ORDER_CREATION_FAILED"
	ErrPaymentConfirmFailed = "PAYMENT_CONFIRMATION_FAILED"
	ErrNoCurrentOrder       = "NO_CURRENT_ORDER"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
