package http

import (
	"time"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/service"
)

type Handler struct {
	services *service.Services

	maxUploadSize  int64
	requestTimeout time.Duration

	secureCookies        bool
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:             services,
		maxUploadSize:        cfg.Server.MaxUploadSize,
		requestTimeout:       cfg.Server.RequestTimeout,
		secureCookies:        cfg.Server.SecureCookies,
		accessTokenDuration:  cfg.App.AccessTokenDuration,
		refreshTokenDuration: cfg.App.RefreshTokenDuration,
		logger:               logger,
	}
}
