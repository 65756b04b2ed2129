package service

import "errors"

var (
	// ErrValidation wraps every input validation failure. The wrapped error
	// carries the user-facing message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned by login for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrNoUsersFound is returned by the user listing when the table is empty.
	ErrNoUsersFound = errors.New("No users found")

	// ErrForbidden is returned when the caller's role does not grant access.
	ErrForbidden = errors.New("Access denied. Admins only")
)
