// Package controller applies user actions and remote results to the task list.
//
// Handle never blocks: actions that need the remote service return an Effect,
// which the caller runs off the UI loop and whose result event is fed back
// into Handle.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tasksync/internal/service"
	"tasksync/internal/tasklist"
)

// Transport is the set of remote operations the controller needs.
type Transport interface {
	FetchTasks(ctx context.Context, limit int) []service.Task
	AddTask(ctx context.Context, title string) (service.Task, bool)
	UpdateTask(ctx context.Context, id service.TaskID, patch service.Patch) (service.Task, bool)
	DeleteTask(ctx context.Context, id service.TaskID) bool
	ToggleTaskStatus(ctx context.Context, id service.TaskID, completed bool) (service.Task, bool)
}

// Effect performs remote I/O and returns the completion event.
type Effect func(ctx context.Context) Event

// Controller owns the task list and the loading flag.
type Controller struct {
	tr      Transport
	list    *tasklist.List
	limit   int
	loading bool
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger records refused row transitions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller. limit is the default page size for Load.
func New(tr Transport, limit int, opts ...Option) *Controller {
	c := &Controller{
		tr:     tr,
		list:   tasklist.New(),
		limit:  limit,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the task list. Callers must not mutate it.
func (c *Controller) List() *tasklist.List {
	return c.list
}

// Loading reports whether the initial load is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Handle applies ev and returns the effect to run, or nil.
func (c *Controller) Handle(ev Event) Effect {
	switch ev := ev.(type) {
	case Load:
		return c.load(ev)
	case Loaded:
		c.loading = false
		c.list.Reset(ev.Tasks)
	case Submit:
		return c.submit(ev)
	case Added:
		if ev.OK {
			c.list.Append(ev.Task)
		}
	case EditStart:
		c.refused(ev, ev.Key, c.list.BeginEdit(ev.Key))
	case EditSave:
		return c.save(ev)
	case Saved:
		c.refused(ev, ev.Key, c.list.FinishEdit(ev.Key, ev.Title))
	case EditCancel:
		c.refused(ev, ev.Key, c.list.CancelEdit(ev.Key))
	case Toggle:
		return c.toggle(ev)
	case Toggled:
		if ev.OK {
			c.refused(ev, ev.Key, c.list.SetCompleted(ev.Key, ev.Completed))
		}
	case DeleteStart:
		c.refused(ev, ev.Key, c.list.BeginDelete(ev.Key))
	case DeleteConfirm:
		return c.confirmDelete(ev)
	case Deleted:
		if ev.OK {
			c.list.Remove(ev.Key)
		} else {
			c.refused(ev, ev.Key, c.list.CancelDelete(ev.Key))
		}
	case DeleteCancel:
		if r, ok := c.list.Row(ev.Key); ok && r.Pending {
			c.refused(ev, ev.Key, tasklist.ErrRowBusy)
		} else {
			c.refused(ev, ev.Key, c.list.CancelDelete(ev.Key))
		}
	}
	return nil
}

// Run handles ev and then every effect it leads to, synchronously.
// It returns the last completion event, or nil if ev needed no remote call.
func (c *Controller) Run(ctx context.Context, ev Event) Event {
	var last Event
	for ev != nil {
		effect := c.Handle(ev)
		if effect == nil {
			return last
		}
		ev = effect(ctx)
		last = ev
	}
	return last
}

func (c *Controller) load(ev Load) Effect {
	limit := ev.Limit
	if limit <= 0 {
		limit = c.limit
	}
	c.loading = true
	c.list.Clear()
	return func(ctx context.Context) Event {
		return Loaded{Tasks: c.tr.FetchTasks(ctx, limit)}
	}
}

func (c *Controller) submit(ev Submit) Effect {
	title := strings.TrimSpace(ev.Title)
	if title == "" {
		return nil
	}
	return func(ctx context.Context) Event {
		task, ok := c.tr.AddTask(ctx, title)
		return Added{Task: task, OK: ok}
	}
}

func (c *Controller) save(ev EditSave) Effect {
	row, ok := c.list.Row(ev.Key)
	if !ok || row.State != tasklist.Editing || row.Pending {
		c.refused(ev, ev.Key, rowError(ok))
		return nil
	}
	prior := row.Task.Title
	title := strings.TrimSpace(ev.Input)
	if title == "" {
		title = prior
	}
	_ = c.list.SetPending(ev.Key, true)

	id := row.Task.ID
	return func(ctx context.Context) Event {
		if _, ok := c.tr.UpdateTask(ctx, id, service.TitlePatch(title)); !ok {
			return Saved{Key: ev.Key, Title: prior, OK: false}
		}
		return Saved{Key: ev.Key, Title: title, OK: true}
	}
}

func (c *Controller) toggle(ev Toggle) Effect {
	row, ok := c.list.Row(ev.Key)
	if !ok || !row.CanToggle() {
		c.refused(ev, ev.Key, rowError(ok))
		return nil
	}
	id, want := row.Task.ID, !row.Task.Completed
	return func(ctx context.Context) Event {
		_, ok := c.tr.ToggleTaskStatus(ctx, id, want)
		return Toggled{Key: ev.Key, Completed: want, OK: ok}
	}
}

func (c *Controller) confirmDelete(ev DeleteConfirm) Effect {
	row, ok := c.list.Row(ev.Key)
	if !ok || row.State != tasklist.ConfirmingDelete || row.Pending {
		c.refused(ev, ev.Key, rowError(ok))
		return nil
	}
	_ = c.list.SetPending(ev.Key, true)

	id := row.Task.ID
	return func(ctx context.Context) Event {
		return Deleted{Key: ev.Key, OK: c.tr.DeleteTask(ctx, id)}
	}
}

// refused logs a transition the row's state did not allow. err may be nil.
func (c *Controller) refused(ev Event, key tasklist.Key, err error) {
	if err == nil {
		return
	}
	c.logger.Debug("row transition refused",
		"event", fmt.Sprintf("%T", ev),
		"key", int(key),
		"err", err,
	)
}

func rowError(found bool) error {
	if !found {
		return tasklist.ErrNotFound
	}
	return tasklist.ErrRowBusy
}
