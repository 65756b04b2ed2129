package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It is bound either to the connection pool or to an open transaction; the
// owning [DB] supplies the placeholder format and error classifier.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	owner *DB
	conn  DBTX
}

// NewUserRepository constructs a [UserRepository] bound to the connection
// pool. Transaction-bound repositories are obtained through
// [DB.WithinTransaction].
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return newUserRepository(db, db.DB)
}

func newUserRepository(owner *DB, conn DBTX) *userRepository {
	return &userRepository{owner: owner, conn: conn}
}

// FindUserByEmail implements [UserRepository].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserByEmail(ctx, email, false)
}

// FindUserCredentialsByEmail implements [UserRepository].
func (r *userRepository) FindUserCredentialsByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserByEmail(ctx, email, true)
}

func (r *userRepository) findUserByEmail(ctx context.Context, email string, withPassword bool) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByEmailQuery(r.owner.placeholder, email, withPassword)
	if err != nil {
		log.Err(err).Str("func", "userRepository.findUserByEmail").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...), withPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "userRepository.findUserByEmail").Msg("failed to find user by email")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUserByID implements [UserRepository].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIDQuery(r.owner.placeholder, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.FindUserByID").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).
			Str("func", "userRepository.FindUserByID").
			Int64("user_id", userID).
			Msg("failed to find user by id")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CreateUser persists a new user record and returns it with store-assigned
// fields (UserID, CreatedAt, UpdatedAt). The hashed credential is not read
// back.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query, args, err := buildCreateUserQuery(r.owner.placeholder, user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.conn.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		if r.owner.classify(err) == Duplicate {
			log.Warn().Str("func", "userRepository.CreateUser").Msg("email already registered")
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// SetUserProfile implements [UserRepository]. Returns [ErrNoUserWasFound]
// when no row was updated.
func (r *userRepository) SetUserProfile(ctx context.Context, userID, profileID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetUserProfileQuery(r.owner.placeholder, userID, profileID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.SetUserProfile").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.SetUserProfile").
			Int64("user_id", userID).
			Int64("profile_id", profileID).
			Msg("failed to link profile to user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ListUsers implements [UserRepository].
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.owner.placeholder)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		user, scanErr := scanUserWithProfile(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
