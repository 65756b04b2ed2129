package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/service"
	"github.com/MKhiriev/go-onboard/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

type mockRegistrationService struct {
	registerFn func(ctx context.Context, payload models.RegisterPayload, picture, certificate models.Artifact) (models.User, error)
}

func (m *mockRegistrationService) Register(ctx context.Context, payload models.RegisterPayload, picture, certificate models.Artifact) (models.User, error) {
	return m.registerFn(ctx, payload, picture, certificate)
}

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	loginFn        func(ctx context.Context, payload models.LoginPayload) (models.LoginResult, error)
	createTokensFn func(ctx context.Context, user models.User) (models.Tokens, error)
	parseFn        func(ctx context.Context, token string) (models.UserClaims, error)
	refreshFn      func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, payload models.LoginPayload) (models.LoginResult, error) {
	return m.loginFn(ctx, payload)
}

func (m *mockAuthService) CreateTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	return m.createTokensFn(ctx, user)
}

func (m *mockAuthService) ParseAccessToken(ctx context.Context, token string) (models.UserClaims, error) {
	if m.parseFn != nil {
		return m.parseFn(ctx, token)
	}
	return parseTestToken(ctx, token)
}

func (m *mockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFn(ctx, refreshToken)
}

type mockUserService struct {
	listFn func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}

type mockAppInfoService struct {
	info models.AppInfo
}

func (m *mockAppInfoService) GetAppInfo(context.Context) models.AppInfo {
	return m.info
}

// parseTestToken accepts the two fixed tokens used across the tests.
func parseTestToken(_ context.Context, token string) (models.UserClaims, error) {
	switch token {
	case "admin-token":
		return models.UserClaims{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin}, nil
	case "user-token":
		return models.UserClaims{UserID: 2, Email: "user@example.com", Role: models.RoleUser}, nil
	default:
		return models.UserClaims{}, service.ErrTokenIsExpiredOrInvalid
	}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testMaxUploadSize = 1 << 20

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		Server: config.Server{
			RequestTimeout: 5 * time.Second,
			MaxUploadSize:  testMaxUploadSize,
		},
	}
}

// newTestServices fills every service with a mock; callers override fields.
func newTestServices() *service.Services {
	return &service.Services{
		RegistrationService: &mockRegistrationService{},
		AuthService:         &mockAuthService{},
		UserService:         &mockUserService{},
		AppInfoService:      &mockAppInfoService{info: models.AppInfo{Name: "Onboard", Version: "1.2.3"}},
	}
}

func newTestRouter(svcs *service.Services) http.Handler {
	return NewHandler(svcs, testConfig(), logger.Nop()).Init()
}

// decodeResponse parses the standard envelope, keeping data raw.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) (models.Response, json.RawMessage) {
	t.Helper()

	var envelope struct {
		models.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope.Response, envelope.Data
}
