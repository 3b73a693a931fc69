package contact

import "errors"

// Sentinel errors for the contact service layer. Validation errors name
// the offending field so handlers can surface them directly.
var (
	ErrMissingToken   = errors.New("recaptchaToken is required")
	ErrInvalidName    = errors.New("name must be between 2 and 100 characters")
	ErrInvalidEmail   = errors.New("email must be a valid address of at most 100 characters")
	ErrInvalidMessage = errors.New("message must be between 10 and 1000 characters")

	// ErrVerificationFailed means the bot-verification provider scored
	// the submission at or below the threshold, or did not confirm it.
	ErrVerificationFailed = errors.New("verification failed, submission appears automated")
	// ErrVerificationUnavailable wraps a failure to reach the
	// verification provider at all.
	ErrVerificationUnavailable = errors.New("verification service unavailable")
)
