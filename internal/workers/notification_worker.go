package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

// ErrWorkerStopped is returned by Enqueue once the worker has stopped.
var ErrWorkerStopped = errors.New("notification worker stopped")

// ErrQueueFull is returned by Enqueue when the buffer is full.
var ErrQueueFull = errors.New("notification queue is full")

// NotificationWorker is an in-process [NotificationDispatcher]: notifications
// are buffered in a channel and delivered one by one by Run.
type NotificationWorker struct {
	sender      adapter.NotificationSender
	queue       chan models.Notification
	sendTimeout time.Duration

	mu      sync.RWMutex
	stopped bool

	logger *logger.Logger
}

// NewNotificationWorker creates a worker with room for queueSize pending
// notifications. Each delivery is bounded by sendTimeout.
func NewNotificationWorker(sender adapter.NotificationSender, queueSize int, sendTimeout time.Duration, log *logger.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}

	return &NotificationWorker{
		sender:      sender,
		queue:       make(chan models.Notification, queueSize),
		sendTimeout: sendTimeout,
		logger:      log,
	}
}

// Dispatch implements [NotificationDispatcher]. A notification that does not
// fit into the queue is dropped and logged.
func (w *NotificationWorker) Dispatch(ctx context.Context, n models.Notification) {
	if err := w.Enqueue(n); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "NotificationWorker.Dispatch").
			Str("template", n.TemplateName).
			Msg("notification dropped")
	}
}

// Enqueue adds n to the queue without blocking.
func (w *NotificationWorker) Enqueue(n models.Notification) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrWorkerStopped
	}

	select {
	case w.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run implements [Worker]. It delivers queued notifications until ctx is
// cancelled, then drains what is already queued before returning.
func (w *NotificationWorker) Run(ctx context.Context) error {
	w.logger.Info().Str("func", "NotificationWorker.Run").Msg("notification worker started")

	for {
		select {
		case n := <-w.queue:
			w.deliver(context.WithoutCancel(ctx), n)
		case <-ctx.Done():
			w.stop()
			w.drain(context.WithoutCancel(ctx))
			w.logger.Info().Str("func", "NotificationWorker.Run").Msg("notification worker stopped")
			return nil
		}
	}
}

func (w *NotificationWorker) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}

func (w *NotificationWorker) drain(ctx context.Context) {
	for {
		select {
		case n := <-w.queue:
			w.deliver(ctx, n)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, n models.Notification) {
	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	if err := w.sender.Send(ctx, n); err != nil {
		w.logger.Err(err).
			Str("func", "NotificationWorker.deliver").
			Str("template", n.TemplateName).
			Msg("failed to send notification")
	}
}
