package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-onboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface, so a repository can be
// bound either to the pool or to an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator maps driver-specific errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository reads and writes the users table.
type UserRepository interface {
	// FindUserByEmail returns the user with the given (normalized) email
	// without the hashed credential. Returns [ErrNoUserWasFound] when absent.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserCredentialsByEmail is FindUserByEmail including the hashed
	// credential. Only the login flow uses it.
	FindUserCredentialsByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given id, without the hashed
	// credential.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// CreateUser inserts user and returns it with store-generated fields.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// SetUserProfile links the user to its profile.
	SetUserProfile(ctx context.Context, userID, profileID int64) error

	// ListUsers returns every user with its profile, newest first.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ProfileRepository writes the profiles table.
type ProfileRepository interface {
	// CreateProfile inserts profile and returns it with store-generated
	// fields. A second profile for the same user yields
	// [ErrProfileAlreadyExists].
	CreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
}

// TxRepositories are repositories bound to a single open transaction.
type TxRepositories struct {
	Users    UserRepository
	Profiles ProfileRepository
}

// Transactor runs a unit of work inside a database transaction.
type Transactor interface {
	// WithinTransaction begins a read-committed transaction, passes
	// transaction-bound repositories to fn and commits when fn returns nil.
	// The transaction is rolled back when fn fails or panics, and is always
	// released.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
