// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-onboard/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the user identifier in the context.
// Used together with GetUserIDFromContext for type-safe retrieval
// of the user ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
var UserIDCtxKey = contextKey("userID")

// UserClaimsCtxKey is the key under which the auth middleware stores the
// verified access token claims.
var UserClaimsCtxKey = contextKey("userClaims")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true: value is found and has the correct int64 type
//   - ok == false: value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithUserClaims returns a copy of ctx carrying claims and the user id they
// identify.
func WithUserClaims(ctx context.Context, claims models.UserClaims) context.Context {
	ctx = context.WithValue(ctx, UserClaimsCtxKey, claims)
	if userID, err := claims.GetUserID(); err == nil {
		ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	}
	return ctx
}

// GetUserClaimsFromContext retrieves the claims stored by [WithUserClaims].
func GetUserClaimsFromContext(ctx context.Context) (models.UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsCtxKey).(models.UserClaims)
	return claims, ok
}
