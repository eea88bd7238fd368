package observability

import (
	"context"
	"sync"

	"github.com/aretw0/puppet/pkg/domain"
)

// Broadcaster fans lifecycle events out to subscribers such as SSE clients.
// A subscriber that falls behind loses events instead of stalling the engine.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan domain.Event
	nextID int
}

// NewBroadcaster creates a broadcaster without subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan domain.Event)}
}

// Subscribe returns a buffered event channel and the function that closes it.
func (b *Broadcaster) Subscribe(buffer int) (<-chan domain.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan domain.Event, buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// Publish delivers e to every subscriber with room in its buffer.
func (b *Broadcaster) Publish(e domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Hooks publishes every lifecycle event.
func (b *Broadcaster) Hooks() domain.LifecycleHooks {
	return EventHooks(func(_ context.Context, e domain.Event) { b.Publish(e) })
}
