package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/app"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/service"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/utils"
)

// errorStatuses is checked in order; the first match wins. Client errors are
// listed before the infrastructure errors they may wrap.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidMultipartForm, http.StatusBadRequest},
	{ErrMissingFile, http.StatusBadRequest},
	{ErrUnsupportedFileType, http.StatusBadRequest},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrNoToken, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrProfileAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{service.ErrNoUsersFound, http.StatusNotFound},

	{adapter.ErrUploadFailed, http.StatusInternalServerError},
	{adapter.ErrInvalidArtifact, http.StatusInternalServerError},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},
	{store.ErrProfileArtifactsMissing, http.StatusInternalServerError},
	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

var userMessages = map[error]string{
	store.ErrEmailAlreadyExists: app.MsgEmailAlreadyRegistered,
	store.ErrNoUserWasFound:     app.MsgUserDoesNotExist,
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text shown to the client. Server errors never
// expose their cause.
func messageFromError(err error) string {
	if errors.Is(err, service.ErrValidation) {
		return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	}

	for _, e := range errorStatuses {
		if !errors.Is(err, e.target) {
			continue
		}
		if e.status >= http.StatusInternalServerError {
			break
		}
		if msg, ok := userMessages[e.target]; ok {
			return msg
		}
		return e.target.Error()
	}

	return app.MsgInternalServerError
}

// writeError logs err with the request logger and writes the error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteResponse(w, status, messageFromError(err), nil)
}
