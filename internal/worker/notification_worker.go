package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homestay/internal/metrics"
	"homestay/internal/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Job is one unit of outbound notification work. Target names the single
// recipient, so a retry never repeats a delivery that already succeeded.
type Job struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Target    string          `json:"target,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// Handler delivers a job. A returned error schedules a retry.
type Handler func(ctx context.Context, job Job) error

// NotificationWorker drains jobs from redis when configured and from an
// in-memory queue otherwise. Failed jobs are retried with backoff and
// land in the dead letter list once retries run out.
type NotificationWorker struct {
	handler       Handler
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan Job
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	logger        *zerolog.Logger
}

func NewNotificationWorker(handler Handler, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *NotificationWorker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &NotificationWorker{
		handler:       handler,
		redis:         redisClient,
		retryPolicy:   retry.withDefaults(),
		queue:         make(chan Job, models.NotificationQueueSize),
		redisQueueKey: "notifications:queue",
		deadLetterKey: "notifications:deadletter",
		pollInterval:  time.Second,
		logger:        logger,
	}
}

// Enqueue schedules a new job. It never blocks: when both redis and the
// local queue are unavailable the job is dropped with an error.
func (w *NotificationWorker) Enqueue(ctx context.Context, kind, target string, payload []byte) error {
	if kind == "" {
		return errors.New("job kind is required")
	}
	job := Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		Target:    target,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	return w.schedule(ctx, job)
}

func (w *NotificationWorker) schedule(ctx context.Context, job Job) error {
	if w.redis != nil {
		if err := w.pushRedis(ctx, w.redisQueueKey, job); err != nil {
			w.logger.Warn().Err(err).Str("job_id", job.ID).Msg("redis push failed, using memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- job:
		return nil
	default:
		metrics.IncNotification("dropped")
		return fmt.Errorf("notification queue full, job %s dropped", job.ID)
	}
}

// Start runs the loop until ctx is done.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("notification worker started")
	defer w.logger.Info().Msg("notification worker stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		if job, ok := w.tryLocalQueue(); ok {
			w.process(ctx, job)
			continue
		}

		if job, ok := w.tryRedis(ctx); ok {
			w.process(ctx, job)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case job := <-w.queue:
			w.process(ctx, job)
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *NotificationWorker) tryLocalQueue() (Job, bool) {
	select {
	case job := <-w.queue:
		return job, true
	default:
		return Job{}, false
	}
}

func (w *NotificationWorker) tryRedis(ctx context.Context) (Job, bool) {
	if w.redis == nil {
		return Job{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			w.logger.Error().Err(err).Msg("redis BRPOP failed")
		}
		return Job{}, false
	}
	if len(res) != 2 {
		return Job{}, false
	}
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		w.logger.Error().Err(err).Msg("decode redis job")
		return Job{}, false
	}
	return job, true
}

func (w *NotificationWorker) process(ctx context.Context, job Job) {
	if err := w.handler(ctx, job); err != nil {
		w.retryOrFail(ctx, job, err)
		return
	}
	metrics.IncNotification("sent")
}

func (w *NotificationWorker) retryOrFail(ctx context.Context, job Job, cause error) {
	job.Attempt++
	if !w.retryPolicy.ShouldRetry(job.Attempt) {
		metrics.IncNotification("failed")
		w.logger.Error().Err(cause).Str("job_id", job.ID).Str("target", job.Target).Int("attempt", job.Attempt).Msg("notification failed")
		w.pushDeadLetter(ctx, job)
		return
	}

	metrics.IncNotification("retry")
	delay := w.retryPolicy.NextDelay(job.Attempt)
	w.logger.Warn().Err(cause).Str("job_id", job.ID).Str("target", job.Target).Dur("delay", delay).Msg("notification retry scheduled")

	time.AfterFunc(delay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := w.schedule(ctx, job); err != nil {
			w.logger.Error().Err(err).Msg("requeue notification")
		}
	})
}

func (w *NotificationWorker) pushRedis(ctx context.Context, key string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, key, data).Err()
}

func (w *NotificationWorker) pushDeadLetter(ctx context.Context, job Job) {
	if w.redis == nil {
		return
	}
	if err := w.pushRedis(ctx, w.deadLetterKey, job); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("dead letter push")
	}
}
