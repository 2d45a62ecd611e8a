// Package appstate holds the observable state containers screens bind to.
// It depends only on the transaction service, never on any rendering layer.
package appstate

import "sync"

// Value is an observable container: readers either poll the current
// snapshot with Get or subscribe for updates. Subscriber channels are
// buffered by one and receive the latest value only; a slow subscriber
// misses intermediate states, never blocks a writer.
type Value[T any] struct {
	mu   sync.Mutex
	v    T
	subs map[int]chan T
	next int
}

// NewValue creates a container holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]chan T)}
}

// Get returns the current snapshot.
func (c *Value[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Set replaces the value and notifies subscribers.
func (c *Value[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
	for _, ch := range c.subs {
		// Drop the stale buffered value so the channel always carries the
		// most recent one.
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// Subscribe registers an observer. The returned channel immediately carries
// the current value. cancel removes the subscription and closes the channel.
func (c *Value[T]) Subscribe() (ch <-chan T, cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	updates := make(chan T, 1)
	updates <- c.v
	c.subs[id] = updates
	return updates, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(updates)
		}
	}
}
