package adapter

import "errors"

// Object storage errors.
var (
	// ErrInvalidArtifact is returned by Upload for an artifact without
	// content or filename, or for an empty folder.
	ErrInvalidArtifact = errors.New("invalid artifact for upload")
	// ErrUploadFailed wraps the last cause after every upload attempt failed.
	ErrUploadFailed = errors.New("object upload failed")
	// ErrDeleteFailed wraps the last cause after every delete attempt failed.
	ErrDeleteFailed = errors.New("object delete failed")
	// ErrInvalidObjectURL is returned by Delete when the URL does not point
	// into the configured bucket.
	ErrInvalidObjectURL = errors.New("invalid object url")
	// ErrObjectStorageConfig is returned by the constructor for an
	// incomplete configuration.
	ErrObjectStorageConfig = errors.New("invalid object storage configuration")
)

// Mail gateway errors, mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// Notification errors.
var (
	// ErrUnknownTemplate is returned when a notification names a template
	// that is not embedded.
	ErrUnknownTemplate = errors.New("unknown notification template")
	// ErrRenderingTemplate is returned when template execution fails.
	ErrRenderingTemplate = errors.New("error rendering notification template")
	// ErrNoRecipient is returned for a notification without an address.
	ErrNoRecipient = errors.New("notification has no recipient")
)
