// Package tasklist holds the client-side task collection and the
// interaction state of each row.
package tasklist

import (
	"errors"

	"tasksync/internal/service"
)

// RowState is the interaction state of one row.
type RowState int

const (
	// Viewing shows the title and the edit, done and delete controls.
	Viewing RowState = iota
	// Editing replaces the title with an input; other controls are hidden.
	Editing
	// ConfirmingDelete shows the confirm prompt; row controls are disabled.
	ConfirmingDelete
)

func (s RowState) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case ConfirmingDelete:
		return "confirming-delete"
	default:
		return "unknown"
	}
}

var (
	// ErrNotFound is returned for a key that is not in the list.
	ErrNotFound = errors.New("row not found")

	// ErrRowBusy is returned when a transition is not allowed from the row's current state.
	ErrRowBusy = errors.New("row is busy")
)

// Key identifies a row locally. Rows are keyed locally because a service may
// echo the same id for different creates.
type Key int

// Row is one task plus its interaction state.
type Row struct {
	Key   Key
	Task  service.Task
	State RowState

	// Pending is set while a save or delete for the row is in flight.
	Pending bool
}

// CanEdit reports whether the edit control is usable.
func (r Row) CanEdit() bool { return r.State == Viewing && !r.Pending }

// CanToggle reports whether the done control is usable.
func (r Row) CanToggle() bool { return r.State == Viewing }

// CanDelete reports whether the delete control is usable.
func (r Row) CanDelete() bool { return r.State == Viewing && !r.Pending }

// ControlsHidden reports whether the action controls are hidden.
func (r Row) ControlsHidden() bool { return r.State == Editing }

// ControlsDisabled reports whether the action controls are shown but disabled.
func (r Row) ControlsDisabled() bool { return r.State == ConfirmingDelete }

// List is an ordered collection of rows.
// It is not safe for concurrent use; the UI loop owns it.
type List struct {
	next  Key
	order []Key
	rows  map[Key]*Row
}

// New creates an empty list.
func New() *List {
	return &List{rows: make(map[Key]*Row)}
}

// Reset replaces all rows with tasks, each in the Viewing state.
func (l *List) Reset(tasks []service.Task) {
	l.order = l.order[:0]
	l.rows = make(map[Key]*Row, len(tasks))
	for _, t := range tasks {
		l.Append(t)
	}
}

// Clear removes all rows.
func (l *List) Clear() {
	l.Reset(nil)
}

// Append adds a row at the end and returns its key.
func (l *List) Append(task service.Task) Key {
	l.next++
	key := l.next
	l.rows[key] = &Row{Key: key, Task: task}
	l.order = append(l.order, key)
	return key
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.order)
}

// Rows returns a copy of all rows in display order.
func (l *List) Rows() []Row {
	out := make([]Row, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, *l.rows[k])
	}
	return out
}

// Tasks returns the task of every row in display order.
func (l *List) Tasks() []service.Task {
	out := make([]service.Task, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.rows[k].Task)
	}
	return out
}

// Row returns a copy of the row with key.
func (l *List) Row(key Key) (Row, bool) {
	r, ok := l.rows[key]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// KeyAt returns the key of the row at display index i.
func (l *List) KeyAt(i int) (Key, bool) {
	if i < 0 || i >= len(l.order) {
		return 0, false
	}
	return l.order[i], true
}

// Index returns the display index of key, or -1.
func (l *List) Index(key Key) int {
	for i, k := range l.order {
		if k == key {
			return i
		}
	}
	return -1
}

// Remove deletes the row with key.
func (l *List) Remove(key Key) bool {
	i := l.Index(key)
	if i < 0 {
		return false
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.rows, key)
	return true
}

// BeginEdit moves a viewing row into the editing state.
func (l *List) BeginEdit(key Key) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	if !r.CanEdit() {
		return ErrRowBusy
	}
	r.State = Editing
	return nil
}

// CancelEdit returns an editing row to viewing without changing its title.
func (l *List) CancelEdit(key Key) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	if r.State != Editing || r.Pending {
		return ErrRowBusy
	}
	r.State = Viewing
	return nil
}

// FinishEdit sets the displayed title and returns the row to viewing.
func (l *List) FinishEdit(key Key, title string) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	r.Task.Title = title
	r.State = Viewing
	r.Pending = false
	return nil
}

// BeginDelete moves a viewing row into the delete confirmation state.
func (l *List) BeginDelete(key Key) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	if !r.CanDelete() {
		return ErrRowBusy
	}
	r.State = ConfirmingDelete
	return nil
}

// CancelDelete dismisses the confirmation and re-enables the row controls.
func (l *List) CancelDelete(key Key) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	if r.State != ConfirmingDelete {
		return ErrRowBusy
	}
	r.State = Viewing
	r.Pending = false
	return nil
}

// SetPending marks a save or delete as in flight.
func (l *List) SetPending(key Key, pending bool) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	r.Pending = pending
	return nil
}

// SetCompleted sets the row's completed flag.
func (l *List) SetCompleted(key Key, completed bool) error {
	r, err := l.get(key)
	if err != nil {
		return err
	}
	r.Task.Completed = completed
	return nil
}

func (l *List) get(key Key) (*Row, error) {
	r, ok := l.rows[key]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}
