package config

import (
	"strings"
	"time"
)

// Default values applied to fields left empty by every source.
const (
	DefaultAppName              = "Onboard"
	DefaultBcryptCost           = 10
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultTokenIssuer          = "go-onboard"
	DefaultLogLevel             = "debug"

	DefaultHTTPAddress     = "0.0.0.0:5500"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxUploadSize   = 10 << 20

	DefaultDriver       = DriverPostgres
	DefaultMaxOpenConns = 10

	DefaultRegion        = "us-east-1"
	DefaultMaxRetries    = 2
	DefaultCallTimeout   = 30 * time.Second
	DefaultMailTimeout   = 10 * time.Second
	DefaultQueueSize     = 64
	DefaultConcurrency   = 2
	DefaultTelemetryName = "go-onboard"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (cfg *StructuredConfig) applyDefaults() {
	app := &cfg.App
	setDefault(&app.Name, DefaultAppName)
	setDefault(&app.BcryptCost, DefaultBcryptCost)
	setDefault(&app.AccessTokenDuration, DefaultAccessTokenDuration)
	setDefault(&app.RefreshTokenDuration, DefaultRefreshTokenDuration)
	setDefault(&app.TokenIssuer, DefaultTokenIssuer)
	setDefault(&app.LogLevel, DefaultLogLevel)
	app.FrontendURL = strings.TrimRight(app.FrontendURL, "/")

	server := &cfg.Server
	setDefault(&server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&server.ShutdownTimeout, DefaultShutdownTimeout)
	setDefault(&server.MaxUploadSize, DefaultMaxUploadSize)

	db := &cfg.Storage.DB
	setDefault(&db.Driver, DefaultDriver)
	setDefault(&db.MaxOpenConns, DefaultMaxOpenConns)

	store := &cfg.Adapter.ObjectStore
	setDefault(&store.Region, DefaultRegion)
	setDefault(&store.MaxRetries, DefaultMaxRetries)
	setDefault(&store.CallTimeout, DefaultCallTimeout)
	store.Endpoint = strings.TrimRight(store.Endpoint, "/")
	if store.PublicBaseURL == "" && store.Bucket != "" {
		if store.Endpoint != "" {
			store.PublicBaseURL = store.Endpoint + "/" + store.Bucket
		} else {
			store.PublicBaseURL = "https://" + store.Bucket + ".s3." + store.Region + ".amazonaws.com"
		}
	}
	store.PublicBaseURL = strings.TrimRight(store.PublicBaseURL, "/")

	setDefault(&cfg.Adapter.Mail.Timeout, DefaultMailTimeout)

	setDefault(&cfg.Workers.QueueSize, DefaultQueueSize)
	setDefault(&cfg.Workers.Concurrency, DefaultConcurrency)

	setDefault(&cfg.Telemetry.ServiceName, DefaultTelemetryName)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
