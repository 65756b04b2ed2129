// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when looking for the
// access token. Callers can match against them with [errors.Is].
var (
	// ErrNoToken is returned when the request carries neither a token cookie
	// nor an "Authorization" header.
	ErrNoToken = errors.New("No Token Received")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

// Sentinel errors returned while reading the registration form.
var (
	ErrInvalidJSON          = errors.New("Invalid JSON was passed")
	ErrInvalidMultipartForm = errors.New("invalid multipart form")

	// ErrMissingFile is returned when the profile picture or the certificate
	// is absent from the form.
	ErrMissingFile = errors.New("Profile picture and certificate PDF are required")

	// ErrUnsupportedFileType is returned when the sniffed content type is not
	// accepted for the form field.
	ErrUnsupportedFileType = errors.New("Only images (jpg, jpeg, png) and PDFs are allowed")

	// ErrFileTooLarge is returned when a file exceeds the upload limit.
	ErrFileTooLarge = errors.New("file is too large")
)
