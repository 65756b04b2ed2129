package service

import (
	"fmt"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/crypto"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/workers"
	"github.com/MKhiriev/go-onboard/models"
)

type Services struct {
	RegistrationService RegistrationService
	AuthService         AuthService
	UserService         UserService
	AppInfoService      AppInfoService
}

func NewServices(
	storages *store.Storages,
	objectStorage adapter.ObjectStorage,
	dispatcher workers.NotificationDispatcher,
	buildInfo models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	hasher, err := crypto.NewBcryptHasher(cfg.App.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	return &Services{
		RegistrationService: NewRegistrationService(storages.Transactor, objectStorage, hasher, dispatcher, cfg.App, logger),
		AuthService:         NewAuthService(storages.UserRepository, hasher, cfg.App, logger),
		UserService:         NewUserService(storages.UserRepository, logger),
		AppInfoService:      NewAppInfoService(buildInfo, cfg.App, logger),
	}, nil
}
