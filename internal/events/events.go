// Package events carries the session event channel. Session state is
// never shared mutably: publishers emit immutable snapshots and every
// subscriber receives its own copy.
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Session event types.
const (
	EventSessionStarted = "session.started"
	EventSessionRenewed = "session.renewed"
	EventSessionEnded   = "session.ended"
)

// SessionEvent is an immutable snapshot of a session change.
type SessionEvent struct {
	Type       string
	Subject    string
	OccurredAt time.Time
}

// Bus fans session events out to subscribers. Slow subscribers drop
// events rather than block publishers.
type Bus struct {
	mu   sync.RWMutex
	subs []chan SessionEvent
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber channel.
func (b *Bus) Subscribe() <-chan SessionEvent {
	ch := make(chan SessionEvent, 16)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(event SessionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// logSessions drains one subscriber channel into the audit log until
// quit closes.
func logSessions(ch <-chan SessionEvent, quit <-chan struct{}, log *zap.Logger) {
	for {
		select {
		case event := <-ch:
			log.Info("session event",
				zap.String("type", event.Type),
				zap.String("subject", event.Subject),
				zap.Time("occurred_at", event.OccurredAt),
			)
		case <-quit:
			return
		}
	}
}
