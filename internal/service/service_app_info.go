package service

import (
	"context"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

type appInfoService struct {
	appInfo models.AppInfo

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, cfg config.App, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		appInfo: buildInfo.AppInfo(cfg.Name, cfg.Version),
		logger:  logger,
	}
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return s.appInfo
}
