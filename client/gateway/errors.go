package gateway

import "errors"

// The error taxonomy the client core works with. Transport-level failures
// are returned wrapped, not as one of these sentinels, so callers can
// tell "you typed it wrong" from "the network ate it".
var (
	ErrValidation         = errors.New("missing or malformed fields")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUnauthorized       = errors.New("token expired or invalid")
)
