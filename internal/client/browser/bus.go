package browser

import "sync"

// Message is one callback delivery: the origin it arrived from, the
// anti-forgery state nonce, and the authorization code.
type Message struct {
	Origin string
	State  string
	Code   string
}

// Bus is the shared message channel callbacks are published on. Consumers
// must filter by origin themselves; the bus delivers everything.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscription is one registered listener. Cancel must be called on every
// terminal handshake transition; an uncancelled subscription leaks across
// repeated attempts.
type Subscription struct {
	C   chan Message
	bus *Bus
}

// Subscribe registers a listener. The channel is buffered so a slow consumer
// does not block the publisher.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan Message, 8), bus: b}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Cancel unregisters the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
}

// Publish delivers msg to every subscriber. Messages to subscribers with a
// full buffer are dropped rather than blocking delivery to the rest.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.C <- msg:
		default:
		}
	}
}

// Subscribers reports the number of registered listeners.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
