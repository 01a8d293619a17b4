package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Host mode events the tube driver reacts to.
const (
	AttractStarted = "mode_attract_started"
	GameEnded      = "game_ended"
	GameStarted    = "game_started"
	BallStarted    = "ball_started"
)

// Event is a named host event with its keyword payload.
type Event struct {
	Kind    string
	Time    time.Time
	Payload map[string]any
}

// Handler is a callback for event subscriptions
type Handler func(Event)

// UnsubscribeFunc is returned from Subscribe and can be called to unsubscribe
type UnsubscribeFunc func()

// Subscriber is the part of a bus a consumer needs.
type Subscriber interface {
	Subscribe(kind string, h Handler) UnsubscribeFunc
}

// handlerEntry wraps a handler with a unique ID for safe unsubscription
type handlerEntry struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously, on the publisher's goroutine, in
// subscription order.
type Bus struct {
	subscribers map[string][]handlerEntry
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]handlerEntry)}
}

// Subscribe registers a handler for a specific event kind
func (b *Bus) Subscribe(kind string, h Handler) UnsubscribeFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID.Add(1)
	b.subscribers[kind] = append(b.subscribers[kind], handlerEntry{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			handlers := b.subscribers[kind]
			for i, e := range handlers {
				if e.id == id {
					b.subscribers[kind] = append(handlers[:i:i], handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every handler subscribed to kind and returns when they are done.
func (b *Bus) Publish(kind string, payload map[string]any) {
	b.mu.RLock()
	entries := append([]handlerEntry(nil), b.subscribers[kind]...)
	b.mu.RUnlock()

	e := Event{Kind: kind, Time: time.Now(), Payload: payload}
	for _, entry := range entries {
		entry.handler(e)
	}
}

// SubscriberCount returns the number of handlers for kind.
func (b *Bus) SubscriberCount(kind string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[kind])
}
