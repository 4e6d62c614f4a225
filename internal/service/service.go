// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for remote task collection operations.
// All REST calls go through this interface.
// The transport layer never talks HTTP directly.
type Service interface {
	// ListTasks returns up to limit tasks in service order.
	ListTasks(ctx context.Context, limit int) ([]Task, error)

	// CreateTask creates a task and returns the record echoed by the service,
	// including the id it assigned.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// UpdateTask applies a partial update and returns the echoed record.
	UpdateTask(ctx context.Context, id TaskID, patch Patch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}
