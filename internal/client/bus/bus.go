// Package bus is an in-process publish/subscribe channel.
//
// It decouples producers that must not know their consumers (the
// authenticated transport raising "unauthenticated") from the consumers
// themselves (the session controller, CLI views). Handlers are called
// synchronously on the publishing goroutine, so by the time Publish returns
// every live subscriber has reacted.
package bus

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handler receives one published value.
type Handler[T any] func(ctx context.Context, v T)

type subscription[T any] struct {
	id      uint64
	handler Handler[T]
	active  atomic.Bool
}

// Bus fans a value out to every subscriber. The zero value is not usable;
// call New.
type Bus[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*subscription[T]
}

func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[uint64]*subscription[T])}
}

// Subscribe registers h and returns the function that removes it. A Publish
// that begins after the returned function has returned never calls h. A
// Publish already under way may still start h once. Calling it more than
// once, or from inside h, is fine.
func (b *Bus[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	s := &subscription[T]{id: b.nextID, handler: h}
	s.active.Store(true)
	b.subs[s.id] = s
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.active.Store(false)
			b.mu.Lock()
			delete(b.subs, s.id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers v to each subscriber at most once. Delivery order is
// unspecified. Subscribers added or removed while Publish runs may or may
// not see v.
func (b *Bus[T]) Publish(ctx context.Context, v T) {
	b.mu.RLock()
	snapshot := make([]*subscription[T], 0, len(b.subs))
	for _, s := range b.subs {
		snapshot = append(snapshot, s)
	}
	b.mu.RUnlock()

	for _, s := range snapshot {
		if !s.active.Load() {
			continue
		}
		s.handler(ctx, v)
	}
}

// Len reports the number of live subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
