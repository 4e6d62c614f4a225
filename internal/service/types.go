// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TaskID is the service-assigned task identifier.
// It is opaque to clients: the service may send it as a JSON number or string.
type TaskID string

// String returns the id as text.
func (id TaskID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id TaskID) IsZero() bool { return id == "" }

// MarshalJSON encodes all-digit ids as JSON numbers and anything else as a string.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number or string.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s: %w", data, err)
	}
	*id = TaskID(n.String())
	return nil
}

func isNumeric(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	return strings.Trim(s, "0123456789") == ""
}

// Task represents a single task record.
type Task struct {
	ID        TaskID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// NewTask is the body sent when creating a task.
type NewTask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TitlePatch returns a Patch that only changes the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// CompletedPatch returns a Patch that only changes the completed flag.
func CompletedPatch(completed bool) Patch {
	return Patch{Completed: &completed}
}

// Apply returns t with the patch's set fields applied.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
