// Package bus is a publish/subscribe channel keyed by event name. The app
// owns one Bus and hands it to the components that talk over it.
// Delivery is synchronous on the emitting goroutine, in subscription
// order.
package bus

import (
	"sync"
)

const (
	// EventTransactionUpdated is emitted after a write to the transactions
	// collection that did not come from a transaction screen.
	EventTransactionUpdated = "transactionUpdated"

	// EventCollectionChanged is emitted by the directory watcher with the
	// collection name as payload.
	EventCollectionChanged = "collectionChanged"
)

type Listener func(payload any)

type entry struct {
	id int64
	fn Listener
}

type Bus struct {
	mu        sync.RWMutex
	nextID    int64
	listeners map[string][]entry
}

func New() *Bus {
	return &Bus{listeners: make(map[string][]entry)}
}

// Subscription detaches one listener. Remove may be called any number of
// times.
type Subscription struct {
	once   sync.Once
	remove func()
}

func (s *Subscription) Remove() {
	if s == nil {
		return
	}
	s.once.Do(s.remove)
}

// AddListener registers fn for name. The same function may be registered
// more than once; each registration is delivered separately.
func (b *Bus) AddListener(name string, fn Listener) *Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners[name] = append(b.listeners[name], entry{id: id, fn: fn})
	b.mu.Unlock()

	return &Subscription{remove: func() { b.removeListener(name, id) }}
}

func (b *Bus) removeListener(name string, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.listeners[name]
	for i, e := range list {
		if e.id == id {
			// copy so an in-flight Emit keeps its snapshot intact
			next := make([]entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.listeners, name)
			} else {
				b.listeners[name] = next
			}
			return
		}
	}
}

// Emit delivers payload to every listener of name registered at the time
// of the call. Emitting with no listeners is a no-op.
func (b *Bus) Emit(name string, payload any) {
	b.mu.RLock()
	list := b.listeners[name]
	b.mu.RUnlock()

	for _, e := range list {
		e.fn(payload)
	}
}

// ListenerCount reports how many listeners are registered for name.
func (b *Bus) ListenerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Scoped subscribes fn for the duration of body.
func (b *Bus) Scoped(name string, fn Listener, body func()) {
	sub := b.AddListener(name, fn)
	defer sub.Remove()
	body()
}

// On registers a listener that only sees payloads of type P.
func On[P any](b *Bus, name string, fn func(P)) *Subscription {
	return b.AddListener(name, func(payload any) {
		if p, ok := payload.(P); ok {
			fn(p)
		}
	})
}

// Publish emits payload under name with a compile-time payload type.
func Publish[P any](b *Bus, name string, payload P) {
	b.Emit(name, payload)
}
