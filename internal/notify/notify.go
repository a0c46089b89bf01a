// Package notify carries user-facing status notices and destructive-action
// confirmation out of the engine core.
package notify

import (
	"log"
	"sync"
	"time"
)

// Level classifies a status notice
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier surfaces a status notice to whatever UI is attached
type Notifier interface {
	Notify(message string, level Level)
}

// Confirmer gates destructive operations (entry deletion, sheet reset)
type Confirmer interface {
	Confirm(message string) bool
}

// LogNotifier writes notices to the process log
type LogNotifier struct{}

// Notify logs the notice
func (LogNotifier) Notify(message string, level Level) {
	log.Printf("[%s] %s", level, message)
}

// AutoConfirmer approves every confirmation. Used where no interactive
// surface exists; the HTTP layer supplies its own confirmer.
type AutoConfirmer struct{}

// Confirm always returns true
func (AutoConfirmer) Confirm(string) bool { return true }

// FuncConfirmer adapts a function to the Confirmer interface
type FuncConfirmer func(message string) bool

// Confirm invokes the function
func (f FuncConfirmer) Confirm(message string) bool { return f(message) }

// Throttle rate-limits notices per failure class so a burst of identical
// storage failures surfaces once, not once per write.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
}

// NewThrottle creates a throttle with the given minimum gap between
// notices of the same class
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// Allow reports whether a notice of the given class may fire now, and if so
// records the firing
func (t *Throttle) Allow(class string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.last[class]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.last[class] = now
	return true
}
