package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNameTooShort     = errors.New("Name must be at least 2 characters")
	ErrNameTooLong      = errors.New("Name must be less than 50 characters")
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("Password must be at most 72 bytes")
	ErrInvalidRole      = errors.New("Role must be USER or ADMIN")
	ErrEmptyArtifact    = errors.New("file is required")
)
