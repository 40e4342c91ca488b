package service

import (
	"sync"

	"instruction-viewer/internal/domain"
)

// Broadcaster fans viewer events out to subscribers. Delivery is
// fire-and-forget: a subscriber whose buffer is full drops events rather than
// blocking the emitting session.
type Broadcaster struct {
	mu      sync.RWMutex
	subs    map[int]chan domain.ViewerEvent
	nextID  int
	bufSize int
	logger  domain.Logger
}

// NewBroadcaster creates a broadcaster with the given per-subscriber buffer.
func NewBroadcaster(bufSize int, logger domain.Logger) *Broadcaster {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &Broadcaster{
		subs:    make(map[int]chan domain.ViewerEvent),
		bufSize: bufSize,
		logger:  logger,
	}
}

// Publish delivers an event to every subscriber that has buffer room.
func (b *Broadcaster) Publish(event domain.ViewerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Dropping event for slow subscriber", "subscriber", id, "type", string(event.Type))
		}
	}
}

// Subscribe registers a new subscriber and returns its channel together with
// an unsubscribe function. The channel is closed on unsubscribe.
func (b *Broadcaster) Subscribe() (<-chan domain.ViewerEvent, func()) {
	ch := make(chan domain.ViewerEvent, b.bufSize)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
