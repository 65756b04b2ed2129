package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/MKhiriev/go-onboard/internal/adapter"
	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/models"
)

const (
	// TypeNotificationSend is the asynq task type carrying a notification.
	TypeNotificationSend = "notification:send"

	notificationQueue      = "notifications"
	notificationMaxRetries = 3
)

// enqueuer is the part of *asynq.Client used by [AsynqDispatcher].
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// RedisClientOpt builds the asynq connection options from cfg.
func RedisClientOpt(cfg config.Workers) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:         cfg.RedisAddress,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// NewNotificationTask encodes n as an asynq task.
func NewNotificationTask(n models.Notification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("error encoding notification task: %w", err)
	}

	return asynq.NewTask(TypeNotificationSend, payload), nil
}

// AsynqDispatcher implements [NotificationDispatcher] by enqueueing
// notifications into Redis.
type AsynqDispatcher struct {
	client         enqueuer
	enqueueTimeout time.Duration
	logger         *logger.Logger
}

func NewAsynqDispatcher(cfg config.Workers, log *logger.Logger) *AsynqDispatcher {
	return newAsynqDispatcher(asynq.NewClient(RedisClientOpt(cfg)), log)
}

func newAsynqDispatcher(client enqueuer, log *logger.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{client: client, enqueueTimeout: 5 * time.Second, logger: log}
}

// Dispatch implements [NotificationDispatcher].
func (d *AsynqDispatcher) Dispatch(ctx context.Context, n models.Notification) {
	log := logger.FromContext(ctx)

	task, err := NewNotificationTask(n)
	if err != nil {
		log.Err(err).Str("func", "AsynqDispatcher.Dispatch").Msg("notification dropped")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.enqueueTimeout)
	defer cancel()

	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue(notificationQueue),
		asynq.MaxRetry(notificationMaxRetries),
	)
	if err != nil {
		log.Err(err).Str("func", "AsynqDispatcher.Dispatch").Msg("failed to enqueue notification")
		return
	}

	log.Debug().
		Str("func", "AsynqDispatcher.Dispatch").
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("notification enqueued")
}

// Close releases the Redis connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

// NotificationTaskHandler delivers decoded notification tasks with sender.
type NotificationTaskHandler struct {
	sender adapter.NotificationSender
	logger *logger.Logger
}

func NewNotificationTaskHandler(sender adapter.NotificationSender, log *logger.Logger) *NotificationTaskHandler {
	return &NotificationTaskHandler{sender: sender, logger: log}
}

// ProcessTask implements asynq.Handler. Undecodable payloads are not
// retried.
func (h *NotificationTaskHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var n models.Notification
	if err := json.Unmarshal(task.Payload(), &n); err != nil {
		h.logger.Err(err).Str("func", "NotificationTaskHandler.ProcessTask").Msg("invalid notification payload")
		return fmt.Errorf("invalid notification payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.sender.Send(ctx, n); err != nil {
		h.logger.Err(err).
			Str("func", "NotificationTaskHandler.ProcessTask").
			Str("template", n.TemplateName).
			Msg("failed to send notification")
		return err
	}

	return nil
}

// AsynqNotificationServer is a [Worker] that processes notification tasks
// from Redis.
type AsynqNotificationServer struct {
	server  *asynq.Server
	handler *NotificationTaskHandler
	logger  *logger.Logger
}

func NewAsynqNotificationServer(cfg config.Workers, sender adapter.NotificationSender, log *logger.Logger) *AsynqNotificationServer {
	srv := asynq.NewServer(RedisClientOpt(cfg), asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{notificationQueue: 1},
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			return time.Duration(1<<uint(n)) * time.Second
		},
	})

	return &AsynqNotificationServer{
		server:  srv,
		handler: NewNotificationTaskHandler(sender, log),
		logger:  log,
	}
}

// Run implements [Worker].
func (s *AsynqNotificationServer) Run(ctx context.Context) error {
	mux := asynq.NewServeMux()
	mux.Handle(TypeNotificationSend, s.handler)

	if err := s.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start notification server: %w", err)
	}
	s.logger.Info().Str("func", "AsynqNotificationServer.Run").Msg("notification server started")

	<-ctx.Done()

	s.server.Shutdown()
	s.logger.Info().Str("func", "AsynqNotificationServer.Run").Msg("notification server stopped")
	return nil
}
