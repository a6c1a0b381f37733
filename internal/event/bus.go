package event

import (
	"house-auction-api/internal/entity"
	"sync"
)

// Bus fans domain events out to in-process subscribers. Publish never
// blocks a mutation: a subscriber that falls behind its buffer misses
// events rather than stalling the core.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan entity.Event
	size   int
	closed bool
}

func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 64
	}

	return &Bus{size: bufferSize}
}

func (b *Bus) Subscribe() <-chan entity.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan entity.Event, b.size)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)

	return ch
}

func (b *Bus) Publish(e entity.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
