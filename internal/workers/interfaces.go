// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs several
// workers until their context is cancelled, and the notification
// dispatchers that hand post-commit notifications to a background worker.
package workers

import (
	"context"

	"github.com/MKhiriev/go-onboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker fails, and returns nil on
// a clean stop.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// NotificationDispatcher hands a notification over for asynchronous
// delivery. Dispatch never blocks on delivery and never fails the caller:
// problems are logged by the dispatcher.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n models.Notification)
}
