// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. It runs after
// defaults have been applied.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// sentinels wrapped with the offending field otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.App.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxUploadSize <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.ObjectStore.Bucket == "" {
		return fmt.Errorf("%w: object store bucket is empty", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.ObjectStore.MaxRetries < 0 || cfg.Adapter.ObjectStore.CallTimeout <= 0 {
		return fmt.Errorf("%w: object store retry settings", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.QueueSize <= 0 || cfg.Workers.Concurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (app App) validate() error {
	if app.AccessTokenSecret == "" || app.RefreshTokenSecret == "" {
		return fmt.Errorf("%w: token secrets must be set", ErrInvalidAppConfigs)
	}
	if app.AccessTokenSecret == app.RefreshTokenSecret {
		return fmt.Errorf("%w: access and refresh secrets must differ", ErrInvalidAppConfigs)
	}
	if app.BcryptCost < bcrypt.MinCost || app.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, app.BcryptCost)
	}
	if app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	return nil
}
