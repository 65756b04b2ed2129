package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/handler"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/server"
	"github.com/MKhiriev/go-onboard/internal/service"
	"github.com/MKhiriev/go-onboard/internal/store"
	"github.com/MKhiriev/go-onboard/internal/telemetry"
	"github.com/MKhiriev/go-onboard/internal/workers"
	"github.com/MKhiriev/go-onboard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const telemetryFlushTimeout = 5 * time.Second

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-onboard-server")
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	tracing, err := telemetry.Setup(ctx, cfg.Telemetry, buildInfo.BuildVersion(), log)
	if err != nil {
		return fmt.Errorf("error setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := tracing.Shutdown(flushCtx); err != nil {
			log.Err(err).Msg("error flushing traces")
		}
	}()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	objectStorage, err := adapter.NewS3ObjectStorage(ctx, cfg.Adapter.ObjectStore, log)
	if err != nil {
		return fmt.Errorf("error creating object storage: %w", err)
	}

	sender, err := newNotificationSender(cfg.Adapter.Mail, log)
	if err != nil {
		return fmt.Errorf("error creating notification sender: %w", err)
	}

	background := workers.NewWorkers()
	var dispatcher workers.NotificationDispatcher
	if cfg.Workers.RedisAddress != "" {
		asynqDispatcher := workers.NewAsynqDispatcher(cfg.Workers, log)
		defer asynqDispatcher.Close()

		dispatcher = asynqDispatcher
		background.Add(workers.NewAsynqNotificationServer(cfg.Workers, sender, log))
	} else {
		worker := workers.NewNotificationWorker(sender, cfg.Workers.QueueSize, cfg.Adapter.Mail.Timeout, log)

		dispatcher = worker
		background.Add(worker)
	}

	services, err := service.NewServices(storages, objectStorage, dispatcher, buildInfo, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}
	background.Add(srv)

	return background.Run(ctx)
}

// newNotificationSender delivers through the mail gateway when one is
// configured and only logs notifications otherwise.
func newNotificationSender(cfg config.Mail, log *logger.Logger) (adapter.NotificationSender, error) {
	if cfg.GatewayURL == "" {
		log.Warn().Msg("no mail gateway configured, notifications are only logged")
		return adapter.NewLogSender(log), nil
	}

	return adapter.NewMailGatewaySender(cfg, log)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
