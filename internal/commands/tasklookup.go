package commands

import (
	"context"
	"errors"
	"fmt"

	"tasksync/internal/notify"
	"tasksync/internal/service"
	"tasksync/internal/transport"
)

var (
	errFetchFailed  = errors.New("fetch failed")
	errTaskNotFound = errors.New("task not found")
)

// findTask looks id up in the first limit tasks of the collection.
// The collection contract has no single-item read, so the page is fetched.
func findTask(ctx context.Context, tr *transport.Transport, notes *notify.Writer, id service.TaskID, limit int) (service.Task, error) {
	before := notes.Count()
	tasks := tr.FetchTasks(ctx, limit)
	if notes.Count() > before {
		return service.Task{}, errFetchFailed
	}

	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, id)
}
