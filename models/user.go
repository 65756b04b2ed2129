package models

import (
	"strings"
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	// RoleUser is assigned to every self-registered account.
	RoleUser Role = "USER"
	// RoleAdmin grants access to administrative endpoints such as the user listing.
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
// The hashed credential is never serialized to callers.
type User struct {
	// UserID is the store-generated identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user (2..50 characters).
	Name string `json:"name"`

	// Email is the unique login identifier. It is always stored
	// lower-cased and trimmed; see [NormalizeEmail].
	Email string `json:"email"`

	// Password holds the bcrypt digest of the user's password.
	// It is populated only by credential lookups and must be cleared
	// before the user leaves the service layer.
	Password string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// ProfileID references the user's profile once it has been created.
	ProfileID *int64 `json:"profileId,omitempty"`

	// Profile is populated by read projections that join the profile.
	Profile *Profile `json:"profile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of u with the hashed credential removed.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// NormalizeEmail lower-cases and trims an email address. Every lookup and
// write goes through it so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
