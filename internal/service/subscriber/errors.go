package subscriber

import "errors"

// Sentinel errors for the subscriber service layer.
var (
	// ErrInvalidEmail rejects addresses that fail syntax validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrNotSubscribed reports an unsubscribe against an address that is
	// absent or already unsubscribed. A negative outcome, not a failure.
	ErrNotSubscribed = errors.New("email is not subscribed")
)
