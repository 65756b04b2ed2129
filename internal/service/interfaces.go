// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-onboard/models"
)

// RegistrationService creates accounts together with their uploaded
// artifacts as one unit.
type RegistrationService interface {
	// Register validates the payload and both artifacts, uploads the
	// artifacts and writes the user and its profile in a single
	// transaction. When any step fails the transaction is rolled back,
	// the uploaded artifacts are deleted and the original error is
	// returned. The returned user never carries the hashed credential.
	Register(ctx context.Context, payload models.RegisterPayload, profilePicture, certificate models.Artifact) (models.User, error)
}

type AuthService interface {
	Login(ctx context.Context, payload models.LoginPayload) (models.LoginResult, error)
	CreateTokens(ctx context.Context, user models.User) (models.Tokens, error)
	ParseAccessToken(ctx context.Context, token string) (models.UserClaims, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}

type UserService interface {
	// ListUsers returns every user with its profile, newest first.
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
