package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

// newSQLiteStorages opens a migrated SQLite database in a temp directory.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	cfg := config.Storage{DB: config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "onboard.db"),
	}}

	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func registerThroughTransaction(ctx context.Context, s *Storages, email string) (models.User, error) {
	var created models.User

	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context, repos TxRepositories) error {
		user, err := repos.Users.CreateUser(ctx, models.User{Name: "Jane", Email: email, Password: "hash"})
		if err != nil {
			return err
		}

		profile, err := repos.Profiles.CreateProfile(ctx, models.Profile{
			UserID:            user.UserID,
			ProfilePicURL:     "https://cdn/profile-pictures/jane.png",
			CertificatePDFURL: "https://cdn/certificates/jane.pdf",
		})
		if err != nil {
			return err
		}

		if err := repos.Users.SetUserProfile(ctx, user.UserID, profile.ProfileID); err != nil {
			return err
		}

		user.ProfileID = &profile.ProfileID
		created = user
		return nil
	})

	return created, err
}

func TestStorages_SQLite_RegistrationFlow(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	created, err := registerThroughTransaction(ctx, s, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, created.ProfileID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.UserRepository.FindUserCredentialsByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.Password)
	require.NotNil(t, found.ProfileID)
	assert.Equal(t, *created.ProfileID, *found.ProfileID)

	users, err := s.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, users[0].Profile)
	assert.Equal(t, "https://cdn/certificates/jane.pdf", users[0].Profile.CertificatePDFURL)
}

func TestStorages_SQLite_DuplicateEmailRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	_, err := registerThroughTransaction(ctx, s, "dup@example.com")
	require.NoError(t, err)

	_, err = registerThroughTransaction(ctx, s, "dup@example.com")
	require.ErrorIs(t, err, ErrEmailAlreadyExists)

	users, err := s.UserRepository.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStorages_SQLite_FailedStepLeavesNoUser(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStorages(t)

	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context, repos TxRepositories) error {
		user, err := repos.Users.CreateUser(ctx, models.User{Name: "Half", Email: "half@example.com", Password: "hash"})
		if err != nil {
			return err
		}
		_, err = repos.Profiles.CreateProfile(ctx, models.Profile{UserID: user.UserID})
		return err
	})
	require.ErrorIs(t, err, ErrProfileArtifactsMissing)

	_, err = s.UserRepository.FindUserByEmail(ctx, "half@example.com")
	require.ErrorIs(t, err, ErrNoUserWasFound)
}
