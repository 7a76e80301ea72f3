package bus

import (
	"strings"
	"sync"
)

// DefaultBuffer is the subscription channel buffer used when the caller
// passes a non-positive size.
const DefaultBuffer = 64

// Bus is an in-process publish/subscribe event bus. Subscriptions name a
// kind prefix ("chat.", "like.received", "" for everything); delivery is
// non-blocking and events are dropped for subscribers with full buffers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*Subscription
}

// Subscription is a live subscription. Receive on C; call Cancel when done.
type Subscription struct {
	C      <-chan Event
	prefix string
	ch     chan Event
	cancel func()
}

// Cancel removes the subscription from the bus. Safe to call twice.
func (s *Subscription) Cancel() {
	s.cancel()
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscribe registers interest in events whose Kind starts with prefix.
func (b *Bus) Subscribe(prefix string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan Event, buffer)
	sub := &Subscription{C: ch, prefix: prefix, ch: ch}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	sub.cancel = func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
	return sub
}

// Publish delivers evt to every matching subscriber without blocking.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if !strings.HasPrefix(evt.Kind, sub.prefix) {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			// Slow subscriber; drop rather than stall the publisher.
		}
	}
}
