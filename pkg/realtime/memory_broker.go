package realtime

import (
	"context"
	"log"
	"sync"
)

type (
	memoryBroker struct {
		mu          sync.RWMutex
		subscribers map[string]map[*Subscription]struct{} // table -> subscriptions
	}
)

// NewMemoryBroker returns an in-process broker. It is the default backend
// for single-instance deployments and for tests.
func NewMemoryBroker() Broker {
	return &memoryBroker{
		subscribers: make(map[string]map[*Subscription]struct{}),
	}
}

func (b *memoryBroker) Publish(_ context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers[event.Table] {
		select {
		case sub.C <- event:
		default:
			// subscriber is not draining, drop rather than block the writer
			log.Printf("realtime: dropping %s event for slow subscriber", event.Table)
		}
	}
	return nil
}

func (b *memoryBroker) Subscribe(_ context.Context, tables ...string) (*Subscription, error) {
	sub := &Subscription{C: make(chan Event, 16)}
	sub.cancel = func() {
		b.mu.Lock()
		for _, table := range tables {
			delete(b.subscribers[table], sub)
			if len(b.subscribers[table]) == 0 {
				delete(b.subscribers, table)
			}
		}
		b.mu.Unlock()
		close(sub.C)
	}

	b.mu.Lock()
	for _, table := range tables {
		if b.subscribers[table] == nil {
			b.subscribers[table] = make(map[*Subscription]struct{})
		}
		b.subscribers[table][sub] = struct{}{}
	}
	b.mu.Unlock()

	return sub, nil
}
