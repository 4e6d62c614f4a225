// Package transport wraps the remote task operations for the UI layers.
//
// Every call either returns a usable result or an unambiguous failure marker.
// Failures are logged and pushed to a notifier here and never reach callers
// as errors.
package transport

import (
	"context"
	"log/slog"

	"tasksync/internal/backend/restapi"
	"tasksync/internal/notify"
	"tasksync/internal/service"
)

// DefaultLimit is the number of tasks fetched when no limit is given.
const DefaultLimit = 10

// User-facing failure messages.
const (
	MsgFetchFailed  = "Could not load tasks. Please try again."
	MsgAddFailed    = "Could not add task. Please try again."
	MsgUpdateFailed = "Could not update task. Please try again."
	MsgDeleteFailed = "Could not delete task. Please try again."
)

// Transport performs remote task operations and normalizes their failures.
type Transport struct {
	svc      service.Service
	notifier notify.Notifier
	logger   *slog.Logger
	userID   int
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger failures are recorded to.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithUserID sets the owner id sent with new tasks.
func WithUserID(id int) Option {
	return func(t *Transport) { t.userID = id }
}

// New creates a Transport over svc reporting failures to notifier.
func New(svc service.Service, notifier notify.Notifier, opts ...Option) *Transport {
	t := &Transport{
		svc:      svc,
		notifier: notifier,
		logger:   slog.New(slog.DiscardHandler),
		userID:   1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FetchTasks returns up to limit tasks. On failure it returns an empty slice.
func (t *Transport) FetchTasks(ctx context.Context, limit int) []service.Task {
	if limit <= 0 {
		limit = DefaultLimit
	}
	tasks, err := t.svc.ListTasks(ctx, limit)
	if err != nil {
		t.fail(MsgFetchFailed, "fetch tasks", err, "limit", limit)
		return []service.Task{}
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks
}

// AddTask creates an incomplete task owned by the placeholder user.
func (t *Transport) AddTask(ctx context.Context, title string) (service.Task, bool) {
	created, err := t.svc.CreateTask(ctx, service.NewTask{
		Title:     title,
		Completed: false,
		UserID:    t.userID,
	})
	if err != nil {
		t.fail(MsgAddFailed, "add task", err, "title", title)
		return service.Task{}, false
	}
	return created, true
}

// UpdateTask applies a partial update.
func (t *Transport) UpdateTask(ctx context.Context, id service.TaskID, patch service.Patch) (service.Task, bool) {
	updated, err := t.svc.UpdateTask(ctx, id, patch)
	if err != nil {
		t.fail(MsgUpdateFailed, "update task", err, "id", id)
		return service.Task{}, false
	}
	return updated, true
}

// DeleteTask reports whether the task was deleted.
func (t *Transport) DeleteTask(ctx context.Context, id service.TaskID) bool {
	if err := t.svc.DeleteTask(ctx, id); err != nil {
		t.fail(MsgDeleteFailed, "delete task", err, "id", id)
		return false
	}
	return true
}

// ToggleTaskStatus sets only the completed flag.
func (t *Transport) ToggleTaskStatus(ctx context.Context, id service.TaskID, completed bool) (service.Task, bool) {
	return t.UpdateTask(ctx, id, service.CompletedPatch(completed))
}

func (t *Transport) fail(message, op string, err error, attrs ...any) {
	args := append([]any{"op", op, "err", err}, attrs...)
	if status := restapi.StatusCode(err); status != 0 {
		args = append(args, "status", status)
	}
	t.logger.Error("remote task operation failed", args...)
	t.notifier.Notify(message)
}
