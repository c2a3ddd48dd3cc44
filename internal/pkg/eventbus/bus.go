package eventbus

import (
	"sync"

	"github.com/adityarama/iuranpay/internal/pkg/logger"
)

// Category is a scoped topic on the bus
type Category string

const (
	CategoryNotification Category = "notification"
	CategoryDashboard    Category = "dashboard_update"
	CategoryConnection   Category = "connection"
)

// Handler receives a published payload. Payload type depends on the
// category: json.RawMessage for pushed envelopes, bool for connection
// changes.
type Handler func(payload interface{})

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a category-scoped publish/subscribe fan-out. Delivery is ordered
// by subscription insertion and at-least-once to every live subscriber;
// duplicate registration across remounts is tolerated.
type Bus struct {
	mu   sync.RWMutex
	seq  uint64
	subs map[Category][]subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Category][]subscription),
	}
}

// Subscribe registers a handler for a category and returns an unsubscribe
// function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(category Category, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := b.seq
	b.subs[category] = append(b.subs[category], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[category]
		for i, s := range subs {
			if s.id == id {
				b.subs[category] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers a payload to all current subscribers of the category in
// registration order. A panicking handler is logged and does not prevent
// delivery to the remaining subscribers.
func (b *Bus) Publish(category Category, payload interface{}) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[category]))
	copy(subs, b.subs[category])
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(category, s, payload)
	}
}

func (b *Bus) deliver(category Category, s subscription, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Event handler panicked",
				logger.String("category", string(category)),
				logger.Any("panic", r))
		}
	}()
	s.handler(payload)
}

// SubscriberCount returns the number of live subscribers for a category
func (b *Bus) SubscriberCount(category Category) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[category])
}
