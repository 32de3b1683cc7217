package types

import "errors"

// Domain error taxonomy. Boolean-returning operations encode plain rejection
// as false; these values cover everything with no natural boolean result.
var (
	ErrNotFound          = errors.New("not found")
	ErrNetworkIncomplete = errors.New("server network is not completely available yet, please try again later")
	ErrWrongServer       = errors.New("user must log in at their home server")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrAlreadyLoggedIn   = errors.New("user is already logged in")
	ErrUnauthorized      = errors.New("operation not permitted")
	ErrEventFinalized    = errors.New("event is already finalized")
	ErrNoDateOptions     = errors.New("event has no date options to finalize")
)
