package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

type profileRepository struct {
	owner *DB
	conn  DBTX
}

func newProfileRepository(owner *DB, conn DBTX) *profileRepository {
	return &profileRepository{owner: owner, conn: conn}
}

// CreateProfile inserts a profile for profile.UserID.
//
// Both artifact URLs are required; a missing one yields
// [ErrProfileArtifactsMissing] without touching the database. A second
// profile for the same user yields [ErrProfileAlreadyExists].
func (r *profileRepository) CreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if profile.ProfilePicURL == "" || profile.CertificatePDFURL == "" {
		return models.Profile{}, ErrProfileArtifactsMissing
	}

	query, args, err := buildCreateProfileQuery(r.owner.placeholder, profile)
	if err != nil {
		log.Err(err).Str("func", "profileRepository.CreateProfile").Msg("failed to build query")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanProfile(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.owner.classify(err) == Duplicate {
			log.Warn().
				Str("func", "profileRepository.CreateProfile").
				Int64("user_id", profile.UserID).
				Msg("profile already exists")
			return models.Profile{}, ErrProfileAlreadyExists
		}
		log.Err(err).
			Str("func", "profileRepository.CreateProfile").
			Int64("user_id", profile.UserID).
			Msg("failed to insert profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}
