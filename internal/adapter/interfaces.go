// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the go-onboard
// server: the S3-compatible object store that holds uploaded files and the
// senders that deliver notifications.
//
// Error values defined in errors.go let callers use [errors.Is] without
// knowing which backend produced the failure (e.g. [ErrUploadFailed] after
// retries are exhausted, [ErrUnauthorized] for a 401 from the mail gateway).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-onboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectStorage stores binary artifacts under logical folders and removes
// them again by their public URL.
type ObjectStorage interface {
	// Upload writes artifact.Buffer under folder and returns its public URL
	// and object key. The key is derived from the sanitized original
	// filename, the current time and a random suffix; every retry reuses the
	// same key. Returns [ErrInvalidArtifact] for an empty buffer, filename or
	// folder, and [ErrUploadFailed] wrapping the last cause once retries are
	// exhausted.
	Upload(ctx context.Context, artifact models.Artifact, folder string) (models.UploadedArtifact, error)

	// Delete removes the object addressed by url. An object that no longer
	// exists counts as deleted. Returns [ErrInvalidObjectURL] when no key can
	// be parsed from url, and [ErrDeleteFailed] once retries are exhausted.
	Delete(ctx context.Context, url string) error
}

// NotificationSender delivers a single rendered notification.
type NotificationSender interface {
	// Send renders n with its template and delivers it. Implementations
	// bound the call with their own timeout.
	Send(ctx context.Context, n models.Notification) error
}
