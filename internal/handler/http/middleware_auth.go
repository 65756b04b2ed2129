package http

import (
	"errors"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/service"
	"github.com/MKhiriev/go-onboard/internal/utils"
	"github.com/MKhiriev/go-onboard/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is read from the accessToken cookie and, when the cookie
// is absent, from an "Authorization: Bearer <token>" header. It is validated
// via [service.AuthService.ParseAccessToken]; on success the claims are
// stored in the request context with [utils.WithUserClaims] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when no token
// is present ([ErrNoToken]), the header is malformed
// ([ErrInvalidAuthorizationHeader]) or the token is expired or invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := tokenFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserClaims(ctx, claims)))
	})
}

// requireRole lets the request through only when the authenticated user has
// one of roles. It must run after [Handler.auth].
func (h *Handler) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetUserClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, ErrNoToken)
				return
			}

			if !slices.Contains(roles, claims.Role) {
				logger.FromRequest(r).Info().
					Int64("id", claims.UserID).
					Str("role", string(claims.Role)).
					Msg("role is not permitted")
				writeError(w, r, service.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest prefers the accessToken cookie and falls back to the
// "Authorization" header.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	} else if err != nil && !errors.Is(err, http.ErrNoCookie) {
		return "", err
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
