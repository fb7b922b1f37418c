// Package notify is an in-process notification bus: short-lived,
// self-dismissing messages surfaced to whatever renders them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification
type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Default durations per kind
const (
	SuccessDuration = 3 * time.Second
	InfoDuration    = 3 * time.Second
	WarningDuration = 4 * time.Second
	ErrorDuration   = 5 * time.Second
)

// DefaultDuration returns the auto-dismiss duration for a kind
func DefaultDuration(kind Kind) time.Duration {
	switch kind {
	case Warning:
		return WarningDuration
	case Error:
		return ErrorDuration
	default:
		return SuccessDuration
	}
}

// Notification is one active message
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Bus holds active notifications. Each notification dismisses itself on
// its own timer; dismissing one never disturbs the others.
type Bus struct {
	mu       sync.Mutex
	active   []Notification
	timers   map[string]*time.Timer
	onChange func([]Notification)
}

// NewBus creates an empty notification bus
func NewBus() *Bus {
	return &Bus{
		timers: make(map[string]*time.Timer),
	}
}

// OnChange registers a callback invoked with the active list after
// every change
func (b *Bus) OnChange(fn func([]Notification)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Notify adds a notification. A zero duration picks the kind's default.
// Returns the notification ID.
func (b *Bus) Notify(message string, kind Kind, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration(kind)
	}

	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	b.mu.Lock()
	b.active = append(b.active, n)
	b.timers[n.ID] = time.AfterFunc(duration, func() {
		b.Dismiss(n.ID)
	})
	b.notifyLocked()
	b.mu.Unlock()

	return n.ID
}

// Success posts a success notification with the default duration
func (b *Bus) Success(message string) string {
	return b.Notify(message, Success, 0)
}

// Info posts an info notification with the default duration
func (b *Bus) Info(message string) string {
	return b.Notify(message, Info, 0)
}

// Warning posts a warning notification with the default duration
func (b *Bus) Warning(message string) string {
	return b.Notify(message, Warning, 0)
}

// Error posts an error notification with the default duration
func (b *Bus) Error(message string) string {
	return b.Notify(message, Error, 0)
}

// Dismiss removes a notification by ID. Idempotent: dismissing an
// unknown or already-dismissed ID does nothing.
func (b *Bus) Dismiss(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if timer, ok := b.timers[id]; ok {
		timer.Stop()
		delete(b.timers, id)
	}

	for i, n := range b.active {
		if n.ID == id {
			b.active = append(b.active[:i], b.active[i+1:]...)
			b.notifyLocked()
			return
		}
	}
}

// Active returns the active notifications in creation order
func (b *Bus) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notification(nil), b.active...)
}

func (b *Bus) notifyLocked() {
	if b.onChange != nil {
		b.onChange(append([]Notification(nil), b.active...))
	}
}
