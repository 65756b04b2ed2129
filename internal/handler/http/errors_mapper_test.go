package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/service"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/validators"
)

func TestStatusAndMessageFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation strips prefix",
			err:         fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrInvalidEmail),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please enter a valid email address",
		},
		{
			name:        "wrapped invalid json",
			err:         fmt.Errorf("%w: %w", ErrInvalidJSON, errors.New("unexpected EOF")),
			wantStatus:  http.StatusBadRequest,
			wantMessage: ErrInvalidJSON.Error(),
		},
		{
			name:        "file too large",
			err:         fmt.Errorf("%w: certificate", ErrFileTooLarge),
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantMessage: ErrFileTooLarge.Error(),
		},
		{
			name:        "invalid credentials",
			err:         service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid email or password",
		},
		{
			name:        "forbidden",
			err:         service.ErrForbidden,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Access denied. Admins only",
		},
		{
			name:        "duplicate email",
			err:         fmt.Errorf("error creating user: %w", store.ErrEmailAlreadyExists),
			wantStatus:  http.StatusConflict,
			wantMessage: "Email already registered",
		},
		{
			name:        "user not found",
			err:         store.ErrNoUserWasFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "User does not exist",
		},
		{
			name:        "upload failure is masked",
			err:         fmt.Errorf("%w: bucket missing", adapter.ErrUploadFailed),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something Went Wrong!!",
		},
		{
			name:        "query failure is masked",
			err:         fmt.Errorf("%w: connection reset", store.ErrExecutingQuery),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something Went Wrong!!",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something Went Wrong!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err))
		})
	}
}

func TestStatusFromError_ClientErrorWinsOverWrappedInfraError(t *testing.T) {
	err := fmt.Errorf("%w: %w", store.ErrEmailAlreadyExists, store.ErrExecutingQuery)

	assert.Equal(t, http.StatusConflict, statusFromError(err))
	assert.Equal(t, "Email already registered", messageFromError(err))
}
