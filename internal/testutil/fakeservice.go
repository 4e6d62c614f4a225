// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"tasksync/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// Call records one method invocation on FakeService.
type Call struct {
	Method string
	ID     service.TaskID
	Patch  service.Patch
	Title  string
	Limit  int
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// NextID, when set, is the id assigned to the next created task.
	NextID service.TaskID
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask adds a task to the fake service.
func (f *FakeService) AddTask(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:        service.TaskID(id),
		Title:     title,
		Completed: completed,
		UserID:    1,
	})
	if n, err := strconv.Atoi(id); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
}

// Task returns the stored task with id.
func (f *FakeService) Task(id service.TaskID) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Calls returns the recorded invocations in order.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method was invoked.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeService) record(c Call) {
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, limit int) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "ListTasks", Limit: limit})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}

	n := len(f.tasks)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]service.Task, n)
	copy(result, f.tasks[:n])
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "CreateTask", Title: task.Title})
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}

	id := f.NextID
	if id.IsZero() {
		id = service.TaskID(strconv.Itoa(f.nextID))
		f.nextID++
	}
	created := service.Task{
		ID:        id,
		Title:     task.Title,
		Completed: task.Completed,
		UserID:    task.UserID,
	}
	f.tasks = append(f.tasks, created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id service.TaskID, patch service.Patch) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "UpdateTask", ID: id, Patch: patch})
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = patch.Apply(t)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
