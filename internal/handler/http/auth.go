package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-onboard/internal/app"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/utils"
	"github.com/MKhiriev/go-onboard/models"
)

// register handles the multipart registration form: the text fields name,
// email, password and role, plus the files profilePicture and certificate.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.parseRegistrationForm(w, r); err != nil {
		writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	payload := models.RegisterPayload{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     models.Role(strings.TrimSpace(r.FormValue("role"))),
	}

	picture, err := h.readArtifact(r, fieldProfilePicture, kindImage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	certificate, err := h.readArtifact(r, fieldCertificate, kindPDF)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.RegistrationService.Register(ctx, payload, picture, certificate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", user.UserID).Msg("user registered")
	utils.WriteResponse(w, http.StatusCreated, app.MsgUserRegistered, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var payload models.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.AuthService.Login(ctx, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", result.User.UserID).Msg("user successfully logged in")

	h.setTokenCookie(w, accessTokenCookie, result.AccessToken, h.accessTokenDuration)
	h.setTokenCookie(w, refreshTokenCookie, result.RefreshToken, h.refreshTokenDuration)

	utils.WriteResponse(w, http.StatusOK, app.MsgLoginSuccess, result)
}

// refreshToken issues a new access token from the refresh token cookie.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		writeError(w, r, ErrNoToken)
		return
	}

	accessToken, err := h.services.AuthService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, accessTokenCookie, accessToken, h.accessTokenDuration)

	utils.WriteResponse(w, http.StatusOK, app.MsgTokenRefreshed, models.Tokens{AccessToken: accessToken})
}

func (h *Handler) authTest(w http.ResponseWriter, r *http.Request) {
	utils.WriteResponse(w, http.StatusOK, app.MsgAuthRouteWorking, nil)
}
