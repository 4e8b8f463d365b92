// Package audit carries denied authorization decisions onto a task queue so
// the request path never blocks on audit persistence.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/logging"
	"github.com/copypoint/cp-backend/internal/repository"
	"github.com/hibiken/asynq"
)

const TypeAuthzDenied = "authz:denied"

type DeniedPayload struct {
	UserID     int64     `json:"user_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Scope      string    `json:"scope"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type TaskQueue struct {
	client *asynq.Client
}

func NewQueue(cfg *config.RedisConfig) (*TaskQueue, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Activate and test the connection
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis queue: %w", err)
	}

	logging.Info("Connected to Redis task queue")

	return &TaskQueue{client: client}, nil
}

func (q *TaskQueue) Enqueue(taskType string, data interface{}) (*asynq.TaskInfo, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	task := asynq.NewTask(taskType, payload)

	return q.client.Enqueue(task)
}

func (q *TaskQueue) Close() error {
	return q.client.Close()
}

// Recorder implements authz.AuditSink by enqueueing denied events. Enqueue
// failures are logged and dropped; the deny response is already on its way.
type Recorder struct {
	queue *TaskQueue
}

func NewRecorder(queue *TaskQueue) *Recorder {
	return &Recorder{queue: queue}
}

var _ authz.AuditSink = (*Recorder)(nil)

func (r *Recorder) RecordDenial(ctx context.Context, event authz.DeniedEvent) {
	_, err := r.queue.Enqueue(TypeAuthzDenied, DeniedPayload{
		UserID:     event.IdentityID,
		Method:     event.Method,
		Path:       event.Path,
		Scope:      event.Scope.String(),
		Reason:     string(event.Reason),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		logging.Error("Failed to enqueue audit event",
			"path", event.Path,
			"reason", string(event.Reason),
			"error", err)
	}
}

// Worker drains the audit queue into the authz_audit table.
type Worker struct {
	server *asynq.Server
	events *repository.AuditEvents
}

func NewWorker(cfg *config.RedisConfig, events *repository.AuditEvents) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logging.Error("process task failed", "type", task.Type(), "payload", string(task.Payload()), "error", err)
			}),
		},
	)

	return &Worker{
		server: server,
		events: events,
	}
}

func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAuthzDenied, w.HandleAuthzDenied)

	return w.server.Start(mux)
}

func (w *Worker) Close() {
	if w.server != nil {
		w.server.Shutdown()
	}
}

func (w *Worker) HandleAuthzDenied(ctx context.Context, t *asynq.Task) error {
	var p DeniedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	logging.Info("Recording denied request", "path", p.Path, "reason", p.Reason)
	if err := w.events.Insert(ctx, repository.AuthzAuditEvent{
		UserID:     p.UserID,
		Method:     p.Method,
		Path:       p.Path,
		Scope:      p.Scope,
		Reason:     p.Reason,
		OccurredAt: p.OccurredAt,
	}); err != nil {
		return fmt.Errorf("persisting audit event: %w", err)
	}

	return nil
}
