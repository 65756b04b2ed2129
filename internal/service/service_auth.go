package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/crypto"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/utils"
	"github.com/MKhiriev/go-onboard/internal/validators"
	"github.com/MKhiriev/go-onboard/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against the stored bcrypt digest and manages the
// access/refresh JWT pair.
type authService struct {
	// userRepository is used to look up accounts by email.
	userRepository store.UserRepository

	hasher    crypto.Hasher
	validator validators.Validator

	// accessTokenSecret and refreshTokenSecret sign the two token kinds.
	// A refresh token therefore never verifies as an access token.
	accessTokenSecret  string
	refreshTokenSecret string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	tracer trace.Tracer
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.Hasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		hasher:               hasher,
		validator:            validators.NewUserValidator(),
		accessTokenSecret:    cfg.AccessTokenSecret,
		refreshTokenSecret:   cfg.RefreshTokenSecret,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		tokenIssuer:          cfg.TokenIssuer,
		tracer:               otel.Tracer(tracerName),
		logger:               logger,
	}
}

// Login authenticates an existing user.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials so
// that callers cannot probe which emails are registered.
//
// Returns the token pair and the user without the hashed credential, or:
//   - ErrValidation if the email or password is malformed.
//   - ErrInvalidCredentials if the credentials do not match.
//   - ErrTokenCreationFailed if signing fails.
func (a *authService) Login(ctx context.Context, payload models.LoginPayload) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	ctx, span := a.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := a.validator.Validate(ctx, payload); err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("invalid login data provided")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	email := models.NormalizeEmail(payload.Email)

	user, err := a.userRepository.FindUserCredentialsByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "authService.Login").Msg("login attempt for unknown email")
		return models.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.LoginResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(payload.Password, user.Password) {
		log.Info().Str("func", "authService.Login").Int64("id", user.UserID).Msg("wrong password")
		return models.LoginResult{}, ErrInvalidCredentials
	}

	tokens, err := a.CreateTokens(ctx, user)
	if err != nil {
		span.RecordError(err)
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user.Sanitized(),
	}, nil
}

// CreateTokens issues the access and refresh tokens for user. Both carry
// the user's id, email and role; they differ in signing key and lifetime.
func (a *authService) CreateTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	claims := models.NewUserClaims(user)

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, claims, a.accessTokenDuration, a.accessTokenSecret)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateTokens").Msg("error signing access token")
		return models.Tokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, claims, a.refreshTokenDuration, a.refreshTokenSecret)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateTokens").Msg("error signing refresh token")
		return models.Tokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ParseAccessToken validates and parses a raw access token.
//
// Any validation failure (expired, wrong issuer, wrong key, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseAccessToken(ctx context.Context, token string) (models.UserClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, a.accessTokenSecret, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseAccessToken").Msg("rejected access token")
		return models.UserClaims{}, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// The user is re-read so that a deleted account cannot refresh, and the
// new token carries the user's current role.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseJWTToken(refreshToken, a.refreshTokenSecret, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "authService.RefreshAccessToken").Msg("rejected refresh token")
		return "", ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(claims.Email))
	if err != nil {
		log.Err(err).Str("func", "authService.RefreshAccessToken").Int64("id", claims.UserID).Msg("user search by email failed")
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, models.NewUserClaims(user), a.accessTokenDuration, a.accessTokenSecret)
	if err != nil {
		log.Err(err).Str("func", "authService.RefreshAccessToken").Msg("error signing access token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return accessToken, nil
}
