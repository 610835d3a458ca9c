package errors

import "errors"

var (
	ErrIncompleteIdentity  = errors.New("identity payload is incomplete")
	ErrTamperedIdentity    = errors.New("identity payload digest mismatch")
	ErrIneligibleIdentity  = errors.New("identity is not eligible for society elections")
	ErrVoterNotFound       = errors.New("voter not found")
	ErrInvalidSessionToken = errors.New("invalid session token")
)
