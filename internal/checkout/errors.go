package checkout

import "errors"

// Sentinel errors for the checkout service layer.
var (
	// ErrInvalidSource means the payment-method token failed validation.
	ErrInvalidSource = errors.New("invalid payment source")
	// ErrInvalidAmount means the amount is not an integer in [1, 999999]
	// minor units.
	ErrInvalidAmount = errors.New("amount must be between 1 and 999999")
	// ErrPaymentFailed wraps any upstream payment failure. The wrapped
	// cause is for logs and development mode only; clients see a generic
	// message.
	ErrPaymentFailed = errors.New("payment processing failed")
)
