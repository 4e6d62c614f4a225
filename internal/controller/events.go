package controller

import (
	"tasksync/internal/service"
	"tasksync/internal/tasklist"
)

// Event is a user action or the completion of a remote call.
type Event interface {
	event()
}

// Load replaces the list with the first page of remote tasks.
type Load struct {
	Limit int
}

// Submit adds a task with the given (untrimmed) title.
type Submit struct {
	Title string
}

// EditStart opens the editor on a row.
type EditStart struct {
	Key tasklist.Key
}

// EditSave saves the editor input of a row.
type EditSave struct {
	Key   tasklist.Key
	Input string
}

// EditCancel closes the editor without saving.
type EditCancel struct {
	Key tasklist.Key
}

// Toggle flips the completed flag of a row.
type Toggle struct {
	Key tasklist.Key
}

// DeleteStart opens the delete confirmation on a row.
type DeleteStart struct {
	Key tasklist.Key
}

// DeleteConfirm deletes the row's task.
type DeleteConfirm struct {
	Key tasklist.Key
}

// DeleteCancel dismisses the delete confirmation.
type DeleteCancel struct {
	Key tasklist.Key
}

// Loaded carries the result of a Load. Tasks is empty on failure.
type Loaded struct {
	Tasks []service.Task
}

// Added carries the result of a Submit.
type Added struct {
	Task service.Task
	OK   bool
}

// Saved carries the result of an EditSave. Title is the title to display:
// the new one on success, the prior one on failure.
type Saved struct {
	Key   tasklist.Key
	Title string
	OK    bool
}

// Toggled carries the result of a Toggle.
type Toggled struct {
	Key       tasklist.Key
	Completed bool
	OK        bool
}

// Deleted carries the result of a DeleteConfirm.
type Deleted struct {
	Key tasklist.Key
	OK  bool
}

func (Load) event()          {}
func (Submit) event()        {}
func (EditStart) event()     {}
func (EditSave) event()      {}
func (EditCancel) event()    {}
func (Toggle) event()        {}
func (DeleteStart) event()   {}
func (DeleteConfirm) event() {}
func (DeleteCancel) event()  {}
func (Loaded) event()        {}
func (Added) event()         {}
func (Saved) event()         {}
func (Toggled) event()       {}
func (Deleted) event()       {}
