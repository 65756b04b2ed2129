package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the claim set carried by both access and refresh tokens.
//
// The subject ("sub") claim mirrors UserID so that standard JWT tooling can
// identify the owner without knowing the custom claims.
type UserClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`

	jwt.RegisteredClaims
}

// NewUserClaims builds the custom part of the claim set for user.
// Registered claims (issuer, expiry) are filled in by the token issuer.
func NewUserClaims(user User) UserClaims {
	return UserClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(user.UserID, 10),
		},
	}
}

// GetUserID returns the owner identifier, falling back to the "sub" claim
// when the custom claim is absent.
func (c UserClaims) GetUserID() (int64, error) {
	if c.UserID != 0 {
		return c.UserID, nil
	}

	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Tokens is an access/refresh token pair issued on login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
