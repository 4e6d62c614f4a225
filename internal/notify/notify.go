// Package notify provides the transient notification surface used to report
// failed remote operations to the user.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMessage is shown when a notification is pushed without text.
	DefaultMessage = "Something went wrong. Please try again."

	// DefaultTTL is how long a notification stays visible.
	DefaultTTL = 5 * time.Second
)

// Notifier receives user-facing failure messages.
type Notifier interface {
	Notify(message string)
}

// Notification is one visible message.
type Notification struct {
	ID      uuid.UUID
	Message string
	Created time.Time
	Expires time.Time
}

// Center holds notifications until they expire.
// It is safe for concurrent use; remote calls push from their own goroutines.
type Center struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

// NewCenter creates a Center whose notifications live for ttl.
// A ttl of zero or less means DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source (for testing).
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Now returns the current time of the center's clock.
func (c *Center) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

// Notify implements Notifier.
func (c *Center) Notify(message string) {
	c.Push(message)
}

// Push adds a notification and returns it.
func (c *Center) Push(message string) Notification {
	if message == "" {
		message = DefaultMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notification{
		ID:      uuid.New(),
		Message: message,
		Created: now,
		Expires: now.Add(c.ttl),
	}
	c.items = append(c.items, n)
	return n
}

// Active drops expired notifications and returns the rest, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Prune drops expired notifications and returns how many were removed.
func (c *Center) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pruneLocked()
}

func (c *Center) pruneLocked() int {
	now := c.now()
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	return removed
}

// NextExpiry returns the earliest expiry among visible notifications.
// Items share one TTL and are appended in creation order, so the first expires first.
func (c *Center) NextExpiry() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return time.Time{}, false
	}
	return c.items[0].Expires, true
}

// Dismiss removes a notification before it expires.
func (c *Center) Dismiss(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Writer prints each notification as an "error:" line.
// Used by non-interactive commands, where stderr is the notification surface.
type Writer struct {
	mu    sync.Mutex
	w     io.Writer
	count int
}

// NewWriter creates a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify implements Notifier.
func (w *Writer) Notify(message string) {
	if message == "" {
		message = DefaultMessage
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.count++
	fmt.Fprintf(w.w, "error: %s\n", message)
}

// Count returns the number of notifications written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
