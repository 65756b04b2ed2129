package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/mock"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/models"
)

func testAuthConfig() config.App {
	return config.App{
		AccessTokenSecret:    "access-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenSecret:   "refresh-secret",
		RefreshTokenDuration: 7 * 24 * time.Hour,
		TokenIssuer:          "go-onboard",
	}
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockHasher) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockHasher(ctrl)

	svc := NewAuthService(users, hasher, testAuthConfig(), logger.Nop()).(*authService)
	return svc, users, hasher
}

func storedUser() models.User {
	return models.User{
		UserID:   42,
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "$2a$10$digest",
		Role:     models.RoleAdmin,
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, hasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().FindUserCredentialsByEmail(ctx, "jane@example.com").Return(storedUser(), nil),
		hasher.EXPECT().Verify("secret1", "$2a$10$digest").Return(true),
	)

	result, err := svc.Login(ctx, models.LoginPayload{Email: " JANE@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)
	assert.Empty(t, result.User.Password)
	assert.Equal(t, int64(42), result.User.UserID)

	claims, err := svc.ParseAccessToken(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, hasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserCredentialsByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	_, unknownErr := svc.Login(ctx, models.LoginPayload{Email: "ghost@example.com", Password: "secret1"})

	users.EXPECT().FindUserCredentialsByEmail(ctx, "jane@example.com").Return(storedUser(), nil)
	hasher.EXPECT().Verify("wrong-password", gomock.Any()).Return(false)
	_, wrongErr := svc.Login(ctx, models.LoginPayload{Email: "jane@example.com", Password: "wrong-password"})

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, "invalid email or password", unknownErr.Error())
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestAuthSvc(t, ctrl)
	dbErr := errors.New("db unavailable")

	users.EXPECT().FindUserCredentialsByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), models.LoginPayload{Email: "jane@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload models.LoginPayload
	}{
		{name: "empty", payload: models.LoginPayload{}},
		{name: "no password", payload: models.LoginPayload{Email: "jane@example.com"}},
		{name: "malformed email", payload: models.LoginPayload{Email: "jane", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _, _ := newTestAuthSvc(t, ctrl)

			_, err := svc.Login(context.Background(), tt.payload)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

// ── CreateTokens / ParseAccessToken ─────────────────────────────────────────

func TestAuthService_CreateTokens_InvalidConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	svc.accessTokenDuration = 0

	_, err := svc.CreateTokens(context.Background(), storedUser())
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseAccessToken_RejectsRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	tokens, err := svc.CreateTokens(context.Background(), storedUser())
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseAccessToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseAccessToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ── RefreshAccessToken ──────────────────────────────────────────────────────

func TestAuthService_RefreshAccessToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tokens, err := svc.CreateTokens(ctx, storedUser())
	require.NoError(t, err)

	current := storedUser()
	current.Password = ""
	current.Role = models.RoleUser
	users.EXPECT().FindUserByEmail(ctx, "jane@example.com").Return(current, nil)

	accessToken, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(ctx, accessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims.Role, "refreshed token carries the current role")
}

func TestAuthService_RefreshAccessToken_RejectsAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	tokens, err := svc.CreateTokens(context.Background(), storedUser())
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RefreshAccessToken_UserGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestAuthSvc(t, ctrl)

	tokens, err := svc.CreateTokens(context.Background(), storedUser())
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)

	_, err = svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}
