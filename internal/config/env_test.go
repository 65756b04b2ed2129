// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom_AllFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_NAME":                   "Onboard",
		"APP_FRONTEND_URL":           "https://app.example.com",
		"APP_SUPPORT_EMAIL":          "support@example.com",
		"APP_BCRYPT_COST":            "12",
		"APP_ACCESS_TOKEN_SECRET":    "access",
		"APP_ACCESS_TOKEN_DURATION":  "15m",
		"APP_REFRESH_TOKEN_SECRET":   "refresh",
		"APP_REFRESH_TOKEN_DURATION": "168h",
		"APP_TOKEN_ISSUER":           "issuer",
		"APP_VERSION":                "1.0.0",
		"APP_LOG_LEVEL":              "info",

		"SERVER_ADDRESS":          "localhost:5500",
		"SERVER_REQUEST_TIMEOUT":  "30s",
		"SERVER_MAX_UPLOAD_SIZE":  "1048576",
		"SERVER_SECURE_COOKIES":   "true",
		"SERVER_SHUTDOWN_TIMEOUT": "5s",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DRIVER":         "sqlite",
		"STORAGE_DB_DATABASE_URI":   "file:onboard.db",
		"STORAGE_DB_MAX_OPEN_CONNS": "4",

		"ADAPTER_OBJECT_STORE_ENDPOINT":          "http://127.0.0.1:9000",
		"ADAPTER_OBJECT_STORE_REGION":            "eu-central-1",
		"ADAPTER_OBJECT_STORE_BUCKET":            "uploads",
		"ADAPTER_OBJECT_STORE_ACCESS_KEY_ID":     "minio",
		"ADAPTER_OBJECT_STORE_SECRET_ACCESS_KEY": "minio-secret",
		"ADAPTER_OBJECT_STORE_USE_PATH_STYLE":    "true",
		"ADAPTER_OBJECT_STORE_MAX_RETRIES":       "3",
		"ADAPTER_OBJECT_STORE_CALL_TIMEOUT":      "5s",

		"ADAPTER_MAIL_GATEWAY_URL":   "http://mail.local/send",
		"ADAPTER_MAIL_GATEWAY_TOKEN": "mail-token",
		"ADAPTER_MAIL_FROM":          "noreply@example.com",
		"ADAPTER_MAIL_TIMEOUT":       "2s",

		"WORKERS_QUEUE_SIZE":     "16",
		"WORKERS_REDIS_ADDRESS":  "localhost:6379",
		"WORKERS_REDIS_PASSWORD": "pw",
		"WORKERS_REDIS_DB":       "1",
		"WORKERS_CONCURRENCY":    "4",

		"TELEMETRY_OTLP_ENDPOINT": "http://otel:4318",
		"TELEMETRY_SERVICE_NAME":  "onboard-test",
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "Onboard", cfg.App.Name)
	assert.Equal(t, "https://app.example.com", cfg.App.FrontendURL)
	assert.Equal(t, "support@example.com", cfg.App.SupportEmail)
	assert.Equal(t, 12, cfg.App.BcryptCost)
	assert.Equal(t, "access", cfg.App.AccessTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, "refresh", cfg.App.RefreshTokenSecret)
	assert.Equal(t, 168*time.Hour, cfg.App.RefreshTokenDuration)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "info", cfg.App.LogLevel)

	assert.Equal(t, "localhost:5500", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(1048576), cfg.Server.MaxUploadSize)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:onboard.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 4, cfg.Storage.DB.MaxOpenConns)

	store := cfg.Adapter.ObjectStore
	assert.Equal(t, "http://127.0.0.1:9000", store.Endpoint)
	assert.Equal(t, "eu-central-1", store.Region)
	assert.Equal(t, "uploads", store.Bucket)
	assert.Equal(t, "minio", store.AccessKeyID)
	assert.Equal(t, "minio-secret", store.SecretAccessKey)
	assert.True(t, store.UsePathStyle)
	assert.Equal(t, 3, store.MaxRetries)
	assert.Equal(t, 5*time.Second, store.CallTimeout)

	assert.Equal(t, "http://mail.local/send", cfg.Adapter.Mail.GatewayURL)
	assert.Equal(t, "mail-token", cfg.Adapter.Mail.GatewayToken)
	assert.Equal(t, "noreply@example.com", cfg.Adapter.Mail.From)
	assert.Equal(t, 2*time.Second, cfg.Adapter.Mail.Timeout)

	assert.Equal(t, 16, cfg.Workers.QueueSize)
	assert.Equal(t, "localhost:6379", cfg.Workers.RedisAddress)
	assert.Equal(t, "pw", cfg.Workers.RedisPassword)
	assert.Equal(t, 1, cfg.Workers.RedisDB)
	assert.Equal(t, 4, cfg.Workers.Concurrency)

	assert.Equal(t, "http://otel:4318", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "onboard-test", cfg.Telemetry.ServiceName)
}

func TestParseEnvFrom_PartialFields(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnvFrom(cfg, map[string]string{
		"APP_ACCESS_TOKEN_SECRET": "access",
		"STORAGE_DB_DATABASE_URI": "postgres://localhost/db",
	})

	require.NoError(t, err)
	assert.Equal(t, "access", cfg.App.AccessTokenSecret)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.RefreshTokenSecret)
	assert.Zero(t, cfg.Server.RequestTimeout)
	assert.Zero(t, cfg.Adapter.ObjectStore.MaxRetries)
}

func TestParseEnvFrom_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{}))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnvFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{name: "invalid duration", environ: map[string]string{"APP_ACCESS_TOKEN_DURATION": "soon"}},
		{name: "invalid int", environ: map[string]string{"APP_BCRYPT_COST": "ten"}},
		{name: "invalid bool", environ: map[string]string{"SERVER_SECURE_COOKIES": "maybe"}},
		{name: "invalid int64", environ: map[string]string{"SERVER_MAX_UPLOAD_SIZE": "big"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseEnvFrom(&StructuredConfig{}, tt.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error getting env configs")
		})
	}
}

func TestParseEnv_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("APP_TOKEN_ISSUER", "process-issuer")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "process-issuer", cfg.App.TokenIssuer)
}
