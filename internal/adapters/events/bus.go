package events

import (
	"context"
	"sync"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// Subscriber receives engine events. It runs on the publisher's goroutine.
type Subscriber func(ctx context.Context, event domain.Event)

// Bus implements ports.EventPublisher by fanning events out to subscribers
// in subscription order
type Bus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	fn    Subscriber
	id    int
	kinds map[domain.EventKind]bool
}

var _ ports.EventPublisher = (*Bus)(nil)

// NewBus creates a Bus with no subscribers
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for the given kinds (all kinds when none are given).
// The returned function removes the subscription.
func (b *Bus) Subscribe(fn Subscriber, kinds ...domain.EventKind) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := subscription{fn: fn, id: b.nextID}
	b.nextID++
	if len(kinds) > 0 {
		sub.kinds = make(map[domain.EventKind]bool, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = true
		}
	}
	b.subscribers = append(b.subscribers, sub)

	return func() { b.unsubscribe(sub.id) }
}

// Publish delivers event to every matching subscriber. A panicking subscriber
// is logged and skipped so the remaining subscribers still run.
func (b *Bus) Publish(ctx context.Context, event domain.Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.kinds != nil && !sub.kinds[event.Kind()] {
			continue
		}
		deliver(ctx, sub.fn, event)
	}
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subscribers {
		if sub.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func deliver(ctx context.Context, fn Subscriber, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Event subscriber panicked",
				"event", event.Kind(),
				"user", event.User(),
				"panic", r)
		}
	}()
	fn(ctx, event)
}
