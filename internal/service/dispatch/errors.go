package dispatch

import "errors"

// Sentinel errors for the dispatch service layer.
var (
	// ErrMissingRequiredData rejects a dispatch whose event or recipient
	// list is incomplete. Nothing is sent.
	ErrMissingRequiredData = errors.New("missing required dispatch data")
)
