package notify

import "sync"

// Severity classifies a notification event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is a user-facing notification emitted by the order lifecycle.
type Event struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Bus fans events out to subscribers. It replaces ad-hoc global notification
// state with an explicit dependency handed to each publisher.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus creates an empty bus. A nil *Bus is safe to publish to.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all future events. Handlers must not
// block; they run on the publisher's goroutine.
func (b *Bus) Subscribe(fn func(Event)) {
	if b == nil || fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the event to every subscriber.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// Info publishes an informational event.
func (b *Bus) Info(message string) { b.Publish(Event{Message: message, Severity: SeverityInfo}) }

// Success publishes a success event.
func (b *Bus) Success(message string) { b.Publish(Event{Message: message, Severity: SeveritySuccess}) }

// Warning publishes a warning event.
func (b *Bus) Warning(message string) { b.Publish(Event{Message: message, Severity: SeverityWarning}) }
