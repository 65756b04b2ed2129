// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/crypto"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/validators"
	"github.com/MKhiriev/go-onboard/internal/workers"
	"github.com/MKhiriev/go-onboard/models"
)

const (
	tracerName = "github.com/MKhiriev/go-onboard/internal/service"

	// defaultCompensationTimeout bounds each best-effort artifact deletion.
	defaultCompensationTimeout = 30 * time.Second
)

// registrationService is the concrete implementation of RegistrationService.
type registrationService struct {
	transactor    store.Transactor
	objectStorage adapter.ObjectStorage
	hasher        crypto.Hasher
	dispatcher    workers.NotificationDispatcher
	validator     validators.Validator

	appName      string
	frontendURL  string
	supportEmail string

	compensationTimeout time.Duration

	tracer trace.Tracer
	logger *logger.Logger
}

// NewRegistrationService wires the registration flow to its collaborators.
// cfg supplies the branding used in the welcome notification.
func NewRegistrationService(
	transactor store.Transactor,
	objectStorage adapter.ObjectStorage,
	hasher crypto.Hasher,
	dispatcher workers.NotificationDispatcher,
	cfg config.App,
	logger *logger.Logger,
) RegistrationService {
	return &registrationService{
		transactor:          transactor,
		objectStorage:       objectStorage,
		hasher:              hasher,
		dispatcher:          dispatcher,
		validator:           validators.NewUserValidator(),
		appName:             cfg.Name,
		frontendURL:         strings.TrimRight(cfg.FrontendURL, "/"),
		supportEmail:        cfg.SupportEmail,
		compensationTimeout: defaultCompensationTimeout,
		tracer:              otel.Tracer(tracerName),
		logger:              logger,
	}
}

// Register runs the registration sequence:
//
//  1. begin a read-committed transaction;
//  2. reject an already registered email;
//  3. hash the password;
//  4. upload the profile picture, then the certificate;
//  5. create the user, create the profile and link it to the user;
//  6. commit, then dispatch the welcome notification.
//
// Uploaded artifacts are recorded as they succeed and deleted when the
// transaction does not commit. Cancelling ctx after validation does not
// interrupt the sequence.
func (s *registrationService) Register(ctx context.Context, payload models.RegisterPayload, profilePicture, certificate models.Artifact) (models.User, error) {
	log := logger.FromContext(ctx)

	ctx, span := s.tracer.Start(ctx, "RegistrationService.Register")
	defer span.End()

	if err := s.validate(ctx, payload, profilePicture, certificate); err != nil {
		log.Err(err).Str("func", "registrationService.Register").Msg("invalid registration data provided")
		return models.User{}, err
	}

	payload.Email = models.NormalizeEmail(payload.Email)
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Role == "" {
		payload.Role = models.RoleUser
	}
	span.SetAttributes(attribute.String("user.role", string(payload.Role)))

	ctx = context.WithoutCancel(ctx)

	var (
		uploaded   []models.UploadedArtifact
		registered models.User
	)

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, repos store.TxRepositories) error {
		_, err := repos.Users.FindUserByEmail(ctx, payload.Email)
		switch {
		case err == nil:
			return store.ErrEmailAlreadyExists
		case !errors.Is(err, store.ErrNoUserWasFound):
			return fmt.Errorf("error checking email uniqueness: %w", err)
		}

		digest, err := s.hasher.Hash(payload.Password)
		if err != nil {
			return err
		}

		picture, err := s.upload(ctx, profilePicture, models.FolderProfilePictures)
		if err != nil {
			return fmt.Errorf("error uploading profile picture: %w", err)
		}
		uploaded = append(uploaded, picture)

		cert, err := s.upload(ctx, certificate, models.FolderCertificates)
		if err != nil {
			return fmt.Errorf("error uploading certificate: %w", err)
		}
		uploaded = append(uploaded, cert)

		user, err := repos.Users.CreateUser(ctx, models.User{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: digest,
			Role:     payload.Role,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		profile, err := repos.Profiles.CreateProfile(ctx, models.Profile{
			UserID:            user.UserID,
			ProfilePicURL:     picture.URL,
			CertificatePDFURL: cert.URL,
		})
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}

		if err = repos.Users.SetUserProfile(ctx, user.UserID, profile.ProfileID); err != nil {
			return fmt.Errorf("error linking profile to user: %w", err)
		}

		user.ProfileID = &profile.ProfileID
		user.Profile = &profile
		registered = user.Sanitized()

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registration failed")
		log.Err(err).
			Str("func", "registrationService.Register").
			Str("email", payload.Email).
			Int("uploaded", len(uploaded)).
			Msg("registration failed, rolling back")

		s.compensate(ctx, uploaded)
		return models.User{}, err
	}

	span.SetAttributes(attribute.Int64("user.id", registered.UserID))
	s.sendWelcome(ctx, registered)

	return registered, nil
}

func (s *registrationService) validate(ctx context.Context, payload models.RegisterPayload, profilePicture, certificate models.Artifact) error {
	if err := s.validator.Validate(ctx, profilePicture, validators.FieldArtifact); err != nil {
		return fmt.Errorf("%w: profile picture: %w", ErrValidation, err)
	}
	if err := s.validator.Validate(ctx, certificate, validators.FieldArtifact); err != nil {
		return fmt.Errorf("%w: certificate: %w", ErrValidation, err)
	}
	if err := s.validator.Validate(ctx, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

func (s *registrationService) upload(ctx context.Context, artifact models.Artifact, folder string) (models.UploadedArtifact, error) {
	ctx, span := s.tracer.Start(ctx, "RegistrationService.upload",
		trace.WithAttributes(
			attribute.String("artifact.folder", folder),
			attribute.Int("artifact.size", len(artifact.Buffer)),
		),
	)
	defer span.End()

	uploaded, err := s.objectStorage.Upload(ctx, artifact, folder)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return models.UploadedArtifact{}, err
	}

	return uploaded, nil
}

// compensate deletes the uploaded artifacts. Each deletion gets its own
// bounded context; failures are logged together and never returned.
func (s *registrationService) compensate(ctx context.Context, uploaded []models.UploadedArtifact) {
	if len(uploaded) == 0 {
		return
	}

	log := logger.FromContext(ctx)
	ctx, span := s.tracer.Start(ctx, "RegistrationService.compensate",
		trace.WithAttributes(attribute.Int("artifacts", len(uploaded))),
	)
	defer span.End()

	var errs error
	for _, artifact := range uploaded {
		errs = multierr.Append(errs, s.deleteArtifact(ctx, artifact))
	}

	if errs != nil {
		span.RecordError(errs)
		log.Err(errs).
			Str("func", "registrationService.compensate").
			Int("failed", len(multierr.Errors(errs))).
			Msg("failed to delete uploaded artifacts")
		return
	}

	log.Debug().Int("deleted", len(uploaded)).Msg("uploaded artifacts deleted")
}

func (s *registrationService) deleteArtifact(ctx context.Context, artifact models.UploadedArtifact) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.compensationTimeout)
	defer cancel()

	if err := s.objectStorage.Delete(ctx, artifact.URL); err != nil {
		return fmt.Errorf("%s: %w", artifact.URL, err)
	}

	return nil
}

func (s *registrationService) sendWelcome(ctx context.Context, user models.User) {
	s.dispatcher.Dispatch(ctx, models.Notification{
		To:           user.Email,
		Subject:      "Welcome to " + s.appName,
		TemplateName: models.TemplateWelcomeUser,
		TemplateData: map[string]any{
			"name":         user.Name,
			"appName":      s.appName,
			"loginUrl":     s.frontendURL + "/login",
			"supportEmail": s.supportEmail,
		},
	})
}
